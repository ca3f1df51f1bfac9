package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/repository"
)

var (
	ErrDeceasedNotFound = errors.New("deceased not found")
	ErrImageNotFound    = errors.New("image not found")
)

// DeceasedView 对外返回的故人档案。示意图两种存法只暴露一个字段：
// 字节落库时给 url（走 /api/deceased-images/:id），否则原样给 image_url。
type DeceasedView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	ImageURL string `json:"image_url,omitempty"`
	URL      string `json:"url,omitempty"`
}

type DeceasedService interface {
	GetByName(ctx context.Context, name string) (*DeceasedView, error)
	// GetMapImage 返回二进制列里的示意图字节与媒体类型；空内容视为不存在。
	GetMapImage(ctx context.Context, id int64) ([]byte, string, error)
}

type deceasedService struct {
	deceased repository.DeceasedRepository
}

func NewDeceasedService(deceased repository.DeceasedRepository) DeceasedService {
	return &deceasedService{deceased: deceased}
}

func (s *deceasedService) GetByName(ctx context.Context, name string) (*DeceasedView, error) {
	d, err := s.deceased.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeceasedNotFound
		}
		return nil, err
	}
	view := &DeceasedView{ID: d.ID, Name: d.Name, Location: d.Location}
	if len(d.MapImage) > 0 {
		view.URL = fmt.Sprintf("/api/deceased-images/%d", d.ID)
	} else {
		view.ImageURL = d.ImageURL
	}
	return view, nil
}

func (s *deceasedService) GetMapImage(ctx context.Context, id int64) ([]byte, string, error) {
	d, err := s.deceased.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", err
	}
	if len(d.MapImage) == 0 {
		return nil, "", ErrImageNotFound
	}
	ct := d.MapImageType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return d.MapImage, ct, nil
}
