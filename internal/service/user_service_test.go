package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/repository"
)

func TestRegisterDeceased(t *testing.T) {
	db := setupDB(t)
	users := repository.NewUserRepository(db)
	svc := NewUserService(users)
	ctx := context.Background()

	u := &model.User{Username: "visitor", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Create(&model.Deceased{Name: "고인", Location: "D-9"}).Error)

	err := svc.RegisterDeceased(ctx, u.ID, "미등록")
	assert.ErrorIs(t, err, ErrDeceasedNotRegistered)

	var unchanged model.User
	require.NoError(t, db.First(&unchanged, u.ID).Error)
	assert.Nil(t, unchanged.DeceasedName)

	require.NoError(t, svc.RegisterDeceased(ctx, u.ID, "고인"))

	var updated model.User
	require.NoError(t, db.First(&updated, u.ID).Error)
	require.NotNil(t, updated.DeceasedName)
	assert.Equal(t, "고인", *updated.DeceasedName)
}
