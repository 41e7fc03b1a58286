package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Follow 关注作者
// @Summary 关注作者（幂等；自关注静默跳过）
// @Tags 关系链
// @Produce json
// @Param username path string true "作者用户名"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	if err := h.relSvc.FollowAuthor(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username")); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"following": true})
}

// Unfollow 取消关注
// @Summary 取消关注（不存在的边为 no-op）
// @Tags 关系链
// @Produce json
// @Param username path string true "作者用户名"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/follow [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	if err := h.relSvc.UnfollowAuthor(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username")); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"following": false})
}
