package model

import "time"

// 注文確定時点のメニュー情報のスナップショット。
// メニューが後で編集・削除されても過去の注文は変わらない。
type OrderItem struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64     `gorm:"not null;index" json:"order_id"`
	MenuItemID    int64     `gorm:"not null;index" json:"menu_item_id"`
	NameSnapshot  string    `gorm:"type:varchar(255);not null" json:"name_snapshot"`
	PriceSnapshot int64     `gorm:"not null" json:"price_snapshot"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
