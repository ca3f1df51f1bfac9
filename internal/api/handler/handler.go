package handler

import (
	"github.com/hanulpark/portal/internal/service"
)

// Handler 聚合各业务 service，供路由注册
type Handler struct {
	auth      service.AuthService
	users     service.UserService
	deceased  service.DeceasedService
	photos    service.PhotoService
	guestbook service.GuestbookService
}

func New(
	auth service.AuthService,
	users service.UserService,
	deceased service.DeceasedService,
	photos service.PhotoService,
	guestbook service.GuestbookService,
) *Handler {
	return &Handler{
		auth:      auth,
		users:     users,
		deceased:  deceased,
		photos:    photos,
		guestbook: guestbook,
	}
}
