package model

import "time"

// GuestbookPost 留言板条目，按 deceased_name 字符串归属（沿用无外键约束的历史 schema）
type GuestbookPost struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DeceasedName string    `json:"deceased_name" gorm:"type:varchar(128);index:idx_guestbook_name;not null"`
	Author       string    `json:"author" gorm:"type:varchar(64);not null"`
	Title        string    `json:"title" gorm:"type:varchar(128);not null"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

func (GuestbookPost) TableName() string { return "guestbook" }

// MaxContentLen 留言正文长度上限（与客户端输入框一致）
const MaxContentLen = 300
