package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/pkg/response"
)

type groupRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Slug        string `json:"slug" binding:"required,notblank"`
	Description string `json:"description"`
}

// CreateGroup 建组
// @Summary 创建小组
// @Tags groups
// @Accept json
// @Produce json
// @Param request body groupRequest true "小组信息"
// @Success 201 {object} response.Response{data=model.Group}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/groups [post]
func (h *Handler) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	group, err := h.groupSvc.Create(c.Request.Context(), req.Title, req.Slug, req.Description)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, group)
}

// DeleteGroup 删组（帖子保留，group 引用置空）
// @Summary 删除小组
// @Tags groups
// @Produce json
// @Param slug path string true "小组 slug"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/groups/{slug} [delete]
func (h *Handler) DeleteGroup(c *gin.Context) {
	if err := h.groupSvc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}
