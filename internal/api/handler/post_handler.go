package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

type postRequest struct {
	Text    string `json:"text"`
	GroupID *uint  `json:"group_id"`
	Image   string `json:"image"`
}

type commentRequest struct {
	Text string `json:"text"`
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "post not found")
		return 0, false
	}
	return uint(id), true
}

// PostDetail 帖子详情
// @Summary 帖子详情（含评论）
// @Tags posts
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	detail, err := h.postSvc.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, detail)
}

// CreatePost 发帖
// @Summary 发帖
// @Tags posts
// @Accept json
// @Produce json
// @Param request body postRequest true "帖子内容"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postSvc.Create(c.Request.Context(), middleware.CurrentUserID(c), service.PostInput{
		Text:    req.Text,
		GroupID: req.GroupID,
		Image:   req.Image,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 编辑帖子（仅作者）
// @Summary 编辑帖子
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param request body postRequest true "帖子内容"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postSvc.Update(c.Request.Context(), id, middleware.CurrentUserID(c), service.PostInput{
		Text:    req.Text,
		GroupID: req.GroupID,
		Image:   req.Image,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除帖子（仅作者）。不触碰页面缓存：首页缓存只按 TTL 过期。
// @Summary 删除帖子
// @Tags posts
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	if err := h.postSvc.Delete(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}

// AddComment 评论
// @Summary 评论帖子
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.commentSvc.Add(c.Request.Context(), id, middleware.CurrentUserID(c), req.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, comment)
}
