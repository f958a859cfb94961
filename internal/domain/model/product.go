package model

import (
	"time"

	"gorm.io/gorm"
)

// カタログ商品。削除はソフトデリート。
// 削除後もカート行からはIDで参照され得る（弱参照）。
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Price       int64          `gorm:"not null" json:"price"`
	Category    string         `gorm:"type:varchar(100);index" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	Image       string         `gorm:"type:varchar(500)" json:"image"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
