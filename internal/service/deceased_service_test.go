package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/repository"
)

func TestGetByNameVariants(t *testing.T) {
	db := setupDB(t)
	svc := NewDeceasedService(repository.NewDeceasedRepository(db))
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Deceased{
		Name: "고인", Location: "D-9", ImageURL: "/location_maps/d9.png",
	}).Error)
	withBytes := &model.Deceased{
		Name: "고인2", Location: "A-1", MapImage: []byte("png"), MapImageType: "image/png",
	}
	require.NoError(t, db.Create(withBytes).Error)

	// url 引用变体：原样透出 image_url
	v, err := svc.GetByName(ctx, "고인")
	require.NoError(t, err)
	assert.Equal(t, "/location_maps/d9.png", v.ImageURL)
	assert.Empty(t, v.URL)

	// 字节落库变体：改走 /api/deceased-images
	v, err = svc.GetByName(ctx, "고인2")
	require.NoError(t, err)
	assert.Empty(t, v.ImageURL)
	assert.Contains(t, v.URL, "/api/deceased-images/")

	_, err = svc.GetByName(ctx, "없음")
	assert.ErrorIs(t, err, ErrDeceasedNotFound)
}

func TestGetMapImage(t *testing.T) {
	db := setupDB(t)
	svc := NewDeceasedService(repository.NewDeceasedRepository(db))
	ctx := context.Background()

	d := &model.Deceased{Name: "고인", MapImage: []byte("bytes"), MapImageType: "image/png"}
	require.NoError(t, db.Create(d).Error)
	empty := &model.Deceased{Name: "고인2", ImageURL: "/x.png"}
	require.NoError(t, db.Create(empty).Error)

	data, ct, err := svc.GetMapImage(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), data)
	assert.Equal(t, "image/png", ct)

	// 没有二进制内容的行与不存在的 id 一律 not found
	_, _, err = svc.GetMapImage(ctx, empty.ID)
	assert.ErrorIs(t, err, ErrImageNotFound)
	_, _, err = svc.GetMapImage(ctx, 999)
	assert.ErrorIs(t, err, ErrImageNotFound)
}
