package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/model"
)

type PhotoRepository interface {
	// ReplaceSlot 先删后插，保证 (user_id, slot_number) 至多一行；
	// 两条语句在同一事务内，崩溃不会留下空槽或重复行。
	ReplaceSlot(ctx context.Context, photo *model.Photo) error
	GetByID(ctx context.Context, id int64) (*model.Photo, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Photo, error)
	ListAll(ctx context.Context) ([]*model.Photo, error)
	Delete(ctx context.Context, id int64) error
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository { return &photoRepository{db: db} }

func (r *photoRepository) ReplaceSlot(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND slot_number = ?", photo.UserID, photo.SlotNumber).
			Delete(&model.Photo{}).Error; err != nil {
			return err
		}
		return tx.Create(photo).Error
	})
}

func (r *photoRepository) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	var p model.Photo
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *photoRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Photo, error) {
	var res []*model.Photo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("slot_number ASC").
		Find(&res).Error
	return res, err
}

func (r *photoRepository) ListAll(ctx context.Context) ([]*model.Photo, error) {
	var res []*model.Photo
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&res).Error
	return res, err
}

func (r *photoRepository) Delete(ctx context.Context, id int64) error {
	// 删除不存在的 id 同样视为成功（幂等删除，与既有接口约定一致）
	return r.db.WithContext(ctx).Delete(&model.Photo{}, id).Error
}
