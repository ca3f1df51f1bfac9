package model

// Deceased 园区管理的故人档案：姓名唯一，按姓名精确查找。
// 位置示意图二选一：image_url 指向静态资源，或 map_image 直接存字节。
type Deceased struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"type:varchar(128);uniqueIndex:ux_deceased_name;not null"`
	Location     string `json:"location" gorm:"type:varchar(64)"`
	ImageURL     string `json:"image_url" gorm:"type:varchar(255)"`
	MapImage     []byte `json:"-"`
	MapImageType string `json:"-" gorm:"type:varchar(64)"`
}

func (Deceased) TableName() string { return "deceased_list" }
