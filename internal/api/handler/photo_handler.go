package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanulpark/portal/internal/service"
	"github.com/hanulpark/portal/pkg/response"
)

// UploadPhoto multipart 上传，userId/slotNumber 优先取表单、缺省回落到 query
// @Summary Upload a photo into one of the three fixed slots
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "image file"
// @Param userId formData int true "owner user id"
// @Param slotNumber formData int true "slot number (1-3)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/photos [post]
func (h *Handler) UploadPhoto(c *gin.Context) {
	userIDStr := c.PostForm("userId")
	if userIDStr == "" {
		userIDStr = c.Query("userId")
	}
	slotStr := c.PostForm("slotNumber")
	if slotStr == "" {
		slotStr = c.Query("slotNumber")
	}

	file, err := c.FormFile("photo")
	if err != nil || userIDStr == "" || slotStr == "" {
		response.BadRequest(c, "Photo, User ID, and Slot Number are required")
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "Photo, User ID, and Slot Number are required")
		return
	}
	slot, err := strconv.Atoi(slotStr)
	if err != nil {
		response.BadRequest(c, "Photo, User ID, and Slot Number are required")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.InternalError(c, "Failed to save photo info", err)
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		response.InternalError(c, "Failed to save photo info", err)
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	photo, err := h.photos.Upload(c.Request.Context(), userID, slot, file.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSlot) {
			response.BadRequest(c, "Slot number must be between 1 and 3")
			return
		}
		response.InternalError(c, "Failed to save photo info", err)
		return
	}

	response.OK(c, gin.H{
		"message":  "Photo uploaded successfully",
		"filename": photo.Filename,
		"id":       photo.ID,
	})
}

// ListPhotos 有 userId 时按槽位升序返回该用户的照片，否则按上传时间倒序返回全部
// @Summary List photos
// @Tags photos
// @Produce json
// @Param userId query int false "owner user id"
// @Success 200 {object} map[string]interface{}
// @Router /api/photos [get]
func (h *Handler) ListPhotos(c *gin.Context) {
	var userID int64
	if s := c.Query("userId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid userId")
			return
		}
		userID = id
	}
	photos, err := h.photos.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "Internal server error", err)
		return
	}
	response.OK(c, gin.H{"photos": photos})
}

// ListSlots 固定三槽装配：空槽返回占位，不落库
// @Summary Assemble the three logical photo slots for a user
// @Tags photos
// @Produce json
// @Param userId query int true "owner user id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/photos/slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Missing userId")
		return
	}
	slots, err := h.photos.Slots(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "Internal server error", err)
		return
	}
	response.OK(c, gin.H{"slots": slots})
}

// GetImage 输出二进制列里的照片字节（db 存储变体）
// @Summary Stream photo bytes by id
// @Tags photos
// @Produce octet-stream
// @Param id path int true "photo id"
// @Success 200 {file} binary
// @Failure 404 "not found"
// @Router /api/images/{id} [get]
func (h *Handler) GetImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	data, contentType, err := h.photos.GetImage(c.Request.Context(), id)
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

// DeletePhoto 按 id 删除照片；重复删除同样返回成功
// @Summary Delete a photo by id
// @Tags photos
// @Produce json
// @Param id path int true "photo id"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/photos/{id} [delete]
func (h *Handler) DeletePhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid photo id")
		return
	}
	if err := h.photos.Delete(c.Request.Context(), id); err != nil {
		response.InternalError(c, "Failed to delete photo", err)
		return
	}
	response.Message(c, "Photo deleted successfully")
}
