package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/service"
	"github.com/hanulpark/portal/pkg/response"
)

type createPostRequest struct {
	DeceasedName string `json:"deceasedName" binding:"required"`
	Author       string `json:"author" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content" binding:"required,max=300"`
}

// ListPosts 按故人姓名取全部留言（发表时间倒序，分页由客户端本地完成）
// @Summary List guestbook posts for a deceased name
// @Tags guestbook
// @Produce json
// @Param deceasedName query string true "deceased name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/guestbook [get]
func (h *Handler) ListPosts(c *gin.Context) {
	name := c.Query("deceasedName")
	if name == "" {
		response.BadRequest(c, "Missing deceasedName")
		return
	}
	posts, err := h.guestbook.List(c.Request.Context(), name)
	if err != nil {
		response.InternalError(c, "Database error", err)
		return
	}
	if posts == nil {
		posts = []*model.GuestbookPost{}
	}
	response.OK(c, gin.H{"posts": posts})
}

// CreatePost 写一条留言，四个字段缺一不可
// @Summary Create a guestbook post
// @Tags guestbook
// @Accept json
// @Produce json
// @Param request body createPostRequest true "post"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/guestbook [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "max" {
					response.BadRequest(c, "내용은 300자를 초과할 수 없습니다.")
					return
				}
			}
		}
		response.BadRequest(c, "All fields are required")
		return
	}

	id, err := h.guestbook.Create(c.Request.Context(), req.DeceasedName, req.Author, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrContentTooLong) {
			response.BadRequest(c, "내용은 300자를 초과할 수 없습니다.")
			return
		}
		response.InternalError(c, "Database error", err)
		return
	}

	response.OK(c, gin.H{"message": "Post created", "id": id})
}

// DeletePost 按 id 删除留言；不校验归属，重复删除同样返回成功
// @Summary Delete a guestbook post by id
// @Tags guestbook
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/guestbook/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid post id")
		return
	}
	if err := h.guestbook.Delete(c.Request.Context(), id); err != nil {
		response.InternalError(c, "Failed to delete post", err)
		return
	}
	response.Message(c, "Post deleted successfully")
}
