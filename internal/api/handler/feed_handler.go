package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/cache"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/response"
)

// homeFeedKey is the single cache key for the rendered home feed. Only
// page 1 is cached; deeper pages always hit the assembler. Entries leave
// the cache by TTL expiry or the admin clear endpoint only — post writes
// deliberately do not invalidate, so reads within the TTL may be stale.
const homeFeedKey = "feed:home"

const jsonContentType = "application/json; charset=utf-8"

// Index 首页 feed
// @Summary 首页 feed（全部帖子，倒序分页）
// @Tags feed
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Router /api/v1/posts [get]
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	page := parsePage(c)

	if page == 1 {
		if raw, err := h.pageCache.Get(ctx, homeFeedKey); err == nil {
			c.Data(http.StatusOK, jsonContentType, raw)
			return
		} else if err != cache.ErrMiss {
			logger.Warn("home feed cache get failed", zap.Error(err))
		}
	}

	feed, err := h.feedSvc.HomeFeed(ctx, page)
	if err != nil {
		renderError(c, err)
		return
	}

	body, err := json.Marshal(response.Response{Code: 0, Message: "ok", Data: feed})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == 1 {
		// concurrent misses may each populate; last write wins
		if err := h.pageCache.Set(ctx, homeFeedKey, body, h.cfg.Cache.HomeTTL); err != nil {
			logger.Warn("home feed cache set failed", zap.Error(err))
		}
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// GroupFeed 小组 feed
// @Summary 小组 feed
// @Tags feed
// @Produce json
// @Param slug path string true "小组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/groups/{slug}/posts [get]
func (h *Handler) GroupFeed(c *gin.Context) {
	group, feed, err := h.feedSvc.GroupFeed(c.Request.Context(), c.Param("slug"), parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"group": group, "feed": feed})
}

// Profile 作者主页 feed
// @Summary 作者主页（帖子 + 关注状态）
// @Tags feed
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/posts [get]
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := h.feedSvc.AuthorFeed(ctx, c.Param("username"), parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}
	// anonymous viewers short-circuit to false inside the service
	following, err := h.relSvc.IsFollowing(ctx, middleware.CurrentUserID(c), profile.Author.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{
		"author":     profile.Author,
		"post_count": profile.PostCount,
		"following":  following,
		"feed":       profile.Feed,
	})
}

// FollowedFeed 关注流
// @Summary 关注作者的帖子 feed
// @Tags feed
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Failure 401 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) FollowedFeed(c *gin.Context) {
	feed, err := h.feedSvc.FollowedFeed(c.Request.Context(), middleware.CurrentUserID(c), parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, feed)
}

// ClearCache 清空页面缓存
// @Summary 管理端：清空页面缓存
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/admin/cache/clear [post]
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.pageCache.Clear(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}
	logger.Info("page cache cleared", zap.String("by", middleware.CurrentUserID(c)))
	response.Success(c, nil)
}
