package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hanulpark/portal/internal/service"
	"github.com/hanulpark/portal/pkg/response"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 凭据校验，命中返回身份（无会话、无 token）
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid username or password")
			return
		}
		response.InternalError(c, "Internal server error", err)
		return
	}

	response.OK(c, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":            u.ID,
			"username":      u.Username,
			"deceased_name": u.DeceasedName,
		},
	})
}
