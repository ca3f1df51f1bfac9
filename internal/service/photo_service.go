package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/repository"
	"github.com/hanulpark/portal/internal/storage"
	"github.com/hanulpark/portal/pkg/logger"
)

var ErrInvalidSlot = errors.New("invalid slot number")

// 照片字节的两种落点
const (
	StorageDisk = "disk"
	StorageDB   = "db"
)

// PhotoView photos 行的对外形态，url 按存储变体指向 /uploads 或 /api/images
type PhotoView struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Filename   string    `json:"filename"`
	SlotNumber int       `json:"slot_number"`
	CreatedAt  time.Time `json:"created_at"`
	URL        string    `json:"url"`
}

// Slot 固定三槽装配结果：占用槽带照片字段，空槽是 type=logo 的占位
type Slot struct {
	Type       string     `json:"type"` // photo | logo
	SlotNumber int        `json:"slot_number"`
	ID         *int64     `json:"id"`
	Filename   *string    `json:"filename"`
	URL        string     `json:"url,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

type PhotoService interface {
	// Upload 覆盖式写入 (userID, slot)：已有行被替换，不同槽互不影响。
	Upload(ctx context.Context, userID int64, slot int, filename, contentType string, data []byte) (*model.Photo, error)
	// List userID 为 0 时返回全部照片（按上传时间倒序），否则按槽位升序。
	List(ctx context.Context, userID int64) ([]*PhotoView, error)
	// Slots 把用户的照片行装配成固定的 1..3 三个逻辑槽。
	Slots(ctx context.Context, userID int64) ([]*Slot, error)
	GetImage(ctx context.Context, id int64) ([]byte, string, error)
	Delete(ctx context.Context, id int64) error
}

type photoService struct {
	photos repository.PhotoRepository
	store  *storage.DiskStore
	mode   string
}

// NewPhotoService mode 为 disk 时 store 不能为空
func NewPhotoService(photos repository.PhotoRepository, store *storage.DiskStore, mode string) PhotoService {
	return &photoService{photos: photos, store: store, mode: mode}
}

func (s *photoService) Upload(ctx context.Context, userID int64, slot int, filename, contentType string, data []byte) (*model.Photo, error) {
	if slot < model.MinSlot || slot > model.MaxSlot {
		return nil, ErrInvalidSlot
	}

	photo := &model.Photo{UserID: userID, SlotNumber: slot}
	switch s.mode {
	case StorageDB:
		photo.Filename = storage.UniqueName(filename)
		photo.Content = data
		photo.ContentType = contentType
	default:
		stored, err := s.store.Save(data, filename)
		if err != nil {
			return nil, err
		}
		photo.Filename = stored
	}

	if err := s.photos.ReplaceSlot(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *photoService) List(ctx context.Context, userID int64) ([]*PhotoView, error) {
	var (
		rows []*model.Photo
		err  error
	)
	if userID > 0 {
		rows, err = s.photos.ListByUser(ctx, userID)
	} else {
		rows, err = s.photos.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	views := make([]*PhotoView, len(rows))
	for i, p := range rows {
		views[i] = s.view(p)
	}
	return views, nil
}

func (s *photoService) Slots(ctx context.Context, userID int64) ([]*Slot, error) {
	rows, err := s.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	bySlot := make(map[int]*model.Photo, len(rows))
	for _, p := range rows {
		bySlot[p.SlotNumber] = p
	}
	slots := make([]*Slot, 0, model.MaxSlot)
	for n := model.MinSlot; n <= model.MaxSlot; n++ {
		p, ok := bySlot[n]
		if !ok {
			slots = append(slots, &Slot{Type: "logo", SlotNumber: n})
			continue
		}
		created := p.CreatedAt
		slots = append(slots, &Slot{
			Type:       "photo",
			SlotNumber: n,
			ID:         &p.ID,
			Filename:   &p.Filename,
			URL:        s.photoURL(p),
			CreatedAt:  &created,
		})
	}
	return slots, nil
}

func (s *photoService) GetImage(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", err
	}
	if len(p.Content) == 0 {
		return nil, "", ErrImageNotFound
	}
	ct := p.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return p.Content, ct, nil
}

func (s *photoService) Delete(ctx context.Context, id int64) error {
	if s.mode == StorageDisk {
		// 行还在时顺带清掉磁盘文件；文件缺失不影响删除
		if p, err := s.photos.GetByID(ctx, id); err == nil {
			if rmErr := s.store.Remove(p.Filename); rmErr != nil {
				logger.Warn("remove upload file failed",
					zap.String("filename", p.Filename), zap.Error(rmErr))
			}
		}
	}
	return s.photos.Delete(ctx, id)
}

func (s *photoService) view(p *model.Photo) *PhotoView {
	return &PhotoView{
		ID:         p.ID,
		UserID:     p.UserID,
		Filename:   p.Filename,
		SlotNumber: p.SlotNumber,
		CreatedAt:  p.CreatedAt,
		URL:        s.photoURL(p),
	}
}

func (s *photoService) photoURL(p *model.Photo) string {
	if s.mode == StorageDB {
		return fmt.Sprintf("/api/images/%d", p.ID)
	}
	return "/uploads/" + p.Filename
}
