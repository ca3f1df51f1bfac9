package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/repository"
)

var ErrDeceasedNotRegistered = errors.New("deceased name not registered")

type UserService interface {
	// RegisterDeceased 把用户绑定到一条已登记的故人档案；档案不存在时拒绝。
	RegisterDeceased(ctx context.Context, userID int64, name string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) RegisterDeceased(ctx context.Context, userID int64, name string) error {
	if err := s.users.BindDeceasedName(ctx, userID, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeceasedNotRegistered
		}
		return err
	}
	return nil
}
