package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanulpark/portal/internal/service"
	"github.com/hanulpark/portal/pkg/response"
)

// GetDeceased 按姓名精确查询故人档案
// @Summary Look up a deceased record by exact name
// @Tags deceased
// @Produce json
// @Param name path string true "deceased name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/deceased/{name} [get]
func (h *Handler) GetDeceased(c *gin.Context) {
	name := c.Param("name")
	view, err := h.deceased.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrDeceasedNotFound) {
			response.NotFound(c, "Deceased not found")
			return
		}
		response.InternalError(c, "Database error", err)
		return
	}
	response.OK(c, gin.H{"deceased": view})
}

// GetDeceasedImage 输出二进制列里的位置示意图（db 存储变体）
// @Summary Stream a deceased record's map image
// @Tags deceased
// @Produce octet-stream
// @Param id path int true "deceased id"
// @Success 200 {file} binary
// @Failure 404 "not found"
// @Router /api/deceased-images/{id} [get]
func (h *Handler) GetDeceasedImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	data, contentType, err := h.deceased.GetMapImage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
