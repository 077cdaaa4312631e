package model

import "time"

// メニューのCRUD自体は本体の管轄外。
// カートが名前と価格を引くための読み取り専用の形だけ持つ。
type MenuItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID    int64     `gorm:"not null;index" json:"vendor_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       int64     `gorm:"not null" json:"price"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
