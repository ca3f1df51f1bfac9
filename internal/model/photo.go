package model

import "time"

// Photo 相片槽位（每个用户固定 1..3 三个槽）
// ux_photos_user_slot = (user_id, slot_number)：同槽至多一张
type Photo struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"user_id" gorm:"index:idx_photos_user;uniqueIndex:ux_photos_user_slot;not null"`
	SlotNumber  int       `json:"slot_number" gorm:"uniqueIndex:ux_photos_user_slot;not null"`
	Filename    string    `json:"filename" gorm:"type:varchar(255);not null"`
	Content     []byte    `json:"-"` // db 存储变体才写入；disk 变体恒为空
	ContentType string    `json:"-" gorm:"type:varchar(64)"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (Photo) TableName() string { return "photos" }

// MinSlot / MaxSlot 槽位编号的有效区间
const (
	MinSlot = 1
	MaxSlot = 3
)
