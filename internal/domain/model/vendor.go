package model

import "time"

// Vendor は店舗。IsOpenが営業フラグで、閉店中はカート追加も注文も受けない。
type Vendor struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerUserID int64  `gorm:"not null;uniqueIndex" json:"owner_user_id"`
	ShopName    string `gorm:"type:varchar(255);not null" json:"shop_name"`
	// 店舗のあるキャンパス内の場所
	LocationID string    `gorm:"type:varchar(100);index" json:"location_id"`
	IsOpen     bool      `gorm:"not null;default:false" json:"is_open"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
