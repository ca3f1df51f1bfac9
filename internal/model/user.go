package model

// User 园区访客账号。deceased_name 绑定 deceased_list.name（字符串引用，非外键）。
type User struct {
	ID           int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string  `json:"username" gorm:"type:varchar(64);uniqueIndex:ux_users_username;not null"`
	Password     string  `json:"-" gorm:"type:varchar(128);not null"` // bcrypt 哈希；历史明文行在首次登录时迁移
	DeceasedName *string `json:"deceased_name" gorm:"type:varchar(128)"`
}

func (User) TableName() string { return "users" }
