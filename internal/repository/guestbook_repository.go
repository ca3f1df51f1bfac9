package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/model"
)

type GuestbookRepository interface {
	Create(ctx context.Context, post *model.GuestbookPost) error
	// ListByDeceasedName 按发表时间倒序；同秒落库时用 id 倒序兜底
	ListByDeceasedName(ctx context.Context, name string) ([]*model.GuestbookPost, error)
	Delete(ctx context.Context, id int64) error
}

type guestbookRepository struct {
	db *gorm.DB
}

func NewGuestbookRepository(db *gorm.DB) GuestbookRepository { return &guestbookRepository{db: db} }

func (r *guestbookRepository) Create(ctx context.Context, post *model.GuestbookPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *guestbookRepository) ListByDeceasedName(ctx context.Context, name string) ([]*model.GuestbookPost, error) {
	var res []*model.GuestbookPost
	err := r.db.WithContext(ctx).
		Where("deceased_name = ?", name).
		Order("created_at DESC").
		Order("id DESC").
		Find(&res).Error
	return res, err
}

func (r *guestbookRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.GuestbookPost{}, id).Error
}
