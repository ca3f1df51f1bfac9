package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hanulpark/portal/internal/service"
	"github.com/hanulpark/portal/pkg/response"
)

type registerDeceasedRequest struct {
	UserID       int64  `json:"userId" binding:"required"`
	DeceasedName string `json:"deceasedName" binding:"required"`
}

// RegisterDeceased 用户绑定故人姓名；姓名必须已在园区登记
// @Summary Bind the current user to a registered deceased name
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerDeceasedRequest true "binding"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/deceased [post]
func (h *Handler) RegisterDeceased(c *gin.Context) {
	var req registerDeceasedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "User ID and Deceased Name are required")
		return
	}

	if err := h.users.RegisterDeceased(c.Request.Context(), req.UserID, req.DeceasedName); err != nil {
		if errors.Is(err, service.ErrDeceasedNotRegistered) {
			response.NotFound(c, "등록되지 않은 고인입니다. 관리실에 문의해주세요.")
			return
		}
		response.InternalError(c, "Database error", err)
		return
	}

	response.OK(c, gin.H{
		"message":       "Updated successfully",
		"deceased_name": req.DeceasedName,
	})
}
