package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/repository"
	"github.com/hanulpark/portal/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService 无会话的凭据校验：命中即返回身份，由客户端自行保存。
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
		return u, nil
	}

	// 历史明文行：直接比较，命中后就地迁移成 bcrypt 哈希
	if u.Password == password {
		if hash, hErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); hErr == nil {
			if uErr := s.users.UpdatePassword(ctx, u.ID, string(hash)); uErr != nil {
				logger.Warn("password rehash failed", zap.Int64("user_id", u.ID), zap.Error(uErr))
			}
		}
		return u, nil
	}

	return nil, ErrInvalidCredentials
}
