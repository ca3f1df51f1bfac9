package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/model"
)

type DeceasedRepository interface {
	GetByName(ctx context.Context, name string) (*model.Deceased, error)
	GetByID(ctx context.Context, id int64) (*model.Deceased, error)
	Create(ctx context.Context, d *model.Deceased) error
}

type deceasedRepository struct {
	db *gorm.DB
}

func NewDeceasedRepository(db *gorm.DB) DeceasedRepository { return &deceasedRepository{db: db} }

func (r *deceasedRepository) GetByName(ctx context.Context, name string) (*model.Deceased, error) {
	var d model.Deceased
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deceasedRepository) GetByID(ctx context.Context, id int64) (*model.Deceased, error) {
	var d model.Deceased
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deceasedRepository) Create(ctx context.Context, d *model.Deceased) error {
	return r.db.WithContext(ctx).Create(d).Error
}
