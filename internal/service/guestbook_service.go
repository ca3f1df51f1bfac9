package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/repository"
)

var ErrContentTooLong = errors.New("content too long")

type GuestbookService interface {
	List(ctx context.Context, deceasedName string) ([]*model.GuestbookPost, error)
	Create(ctx context.Context, deceasedName, author, title, content string) (int64, error)
	// Delete 无条件按 id 删除；不存在的 id 同样返回成功
	Delete(ctx context.Context, id int64) error
}

type guestbookService struct {
	posts repository.GuestbookRepository
}

func NewGuestbookService(posts repository.GuestbookRepository) GuestbookService {
	return &guestbookService{posts: posts}
}

func (s *guestbookService) List(ctx context.Context, deceasedName string) ([]*model.GuestbookPost, error) {
	return s.posts.ListByDeceasedName(ctx, deceasedName)
}

func (s *guestbookService) Create(ctx context.Context, deceasedName, author, title, content string) (int64, error) {
	if utf8.RuneCountInString(content) > model.MaxContentLen {
		return 0, ErrContentTooLong
	}
	post := &model.GuestbookPost{
		DeceasedName: deceasedName,
		Author:       author,
		Title:        title,
		Content:      content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return 0, err
	}
	return post.ID, nil
}

func (s *guestbookService) Delete(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}
