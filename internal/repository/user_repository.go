package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	// BindDeceasedName 校验故人档案存在后写入用户绑定；两步在同一事务内，
	// 档案不存在时返回 gorm.ErrRecordNotFound。
	BindDeceasedName(ctx context.Context, userID int64, name string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hash).Error
}

func (r *userRepository) BindDeceasedName(ctx context.Context, userID int64, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d model.Deceased
		if err := tx.Where("name = ?", name).First(&d).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("deceased_name", name).Error
	})
}
