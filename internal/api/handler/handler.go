package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/apperr"
	"github.com/d60-Lab/yatube/pkg/cache"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Handler carries the service graph and the page cache. The cache is
// injected here once; nothing reaches it through package state.
type Handler struct {
	cfg        *config.Config
	feedSvc    service.FeedService
	relSvc     service.RelationshipService
	postSvc    service.PostService
	commentSvc service.CommentService
	groupSvc   service.GroupService
	authSvc    service.AuthService
	pageCache  cache.Cache
}

func NewHandler(
	cfg *config.Config,
	feedSvc service.FeedService,
	relSvc service.RelationshipService,
	postSvc service.PostService,
	commentSvc service.CommentService,
	groupSvc service.GroupService,
	authSvc service.AuthService,
	pageCache cache.Cache,
) *Handler {
	return &Handler{
		cfg:        cfg,
		feedSvc:    feedSvc,
		relSvc:     relSvc,
		postSvc:    postSvc,
		commentSvc: commentSvc,
		groupSvc:   groupSvc,
		authSvc:    authSvc,
		pageCache:  pageCache,
	}
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	secret := h.cfg.JWT.Secret
	v1 := r.Group("/api/v1")

	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)

	v1.GET("/posts", h.Index)
	v1.GET("/posts/:id", h.PostDetail)
	v1.GET("/groups/:slug/posts", h.GroupFeed)
	v1.GET("/users/:username/posts", middleware.OptionalAuth(secret), h.Profile)

	authed := v1.Group("", middleware.RequireAuth(secret))
	authed.POST("/posts", h.CreatePost)
	authed.PUT("/posts/:id", h.UpdatePost)
	authed.DELETE("/posts/:id", h.DeletePost)
	authed.POST("/posts/:id/comments", h.AddComment)
	authed.GET("/feed", h.FollowedFeed)
	authed.POST("/users/:username/follow", h.Follow)
	authed.DELETE("/users/:username/follow", h.Unfollow)
	authed.POST("/groups", h.CreateGroup)
	authed.DELETE("/groups/:slug", h.DeleteGroup)
	authed.POST("/admin/cache/clear", h.ClearCache)
}

// parsePage reads ?page=; non-numeric or below 1 becomes page 1. Clamping
// past the end happens in the feed assembler, which knows the total.
func parsePage(c *gin.Context) int {
	p, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// renderError maps domain errors onto the response envelope.
func renderError(c *gin.Context, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		response.ValidationFailed(c, ve)
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		response.Forbidden(c, "not the author")
	default:
		response.InternalError(c, err)
	}
}
