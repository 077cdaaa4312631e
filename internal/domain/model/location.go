package model

import "time"

// キャンパス内の場所（学部棟・食堂エリアなど）。
// 学生の所属とお店の設置場所の両方が同じリストを参照する。
type Location struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
