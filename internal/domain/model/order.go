package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodPromptPay PaymentMethod = "PromptPay"
	PaymentMethodCash      PaymentMethod = "Cash"
)

// ステータスを変更する主体。customerは読み取り専用なのでここには無い。
type Actor string

const (
	ActorVendor Actor = "VENDOR"
	ActorAdmin  Actor = "ADMIN"
)

type Order struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID     int64         `gorm:"not null;index" json:"customer_id"`
	VendorID       int64         `gorm:"not null;index" json:"vendor_id"`
	Status         OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount    int64         `gorm:"not null" json:"total_amount"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentSlipRef string        `gorm:"type:varchar(255)" json:"payment_slip_ref,omitempty"`
	IdempotencyKey string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// completed / cancelled からはどこにも遷移できない
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func IsValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition は遷移表そのもの。
// ここに無い組み合わせは全部不正。UIのボタン制御とは別に、必ずここを通す。
func CanTransition(actor Actor, from OrderStatus, to OrderStatus) bool {
	switch actor {
	case ActorVendor:
		switch {
		case from == OrderStatusPending && to == OrderStatusAccepted:
			return true
		case from == OrderStatusPending && to == OrderStatusCancelled:
			return true
		case from == OrderStatusAccepted && to == OrderStatusPreparing:
			return true
		case from == OrderStatusPreparing && to == OrderStatusReady:
			return true
		case from == OrderStatusReady && to == OrderStatusCompleted:
			return true
		}
		return false

	case ActorAdmin:
		// 管理者の強制キャンセル。readyまで進んだら調理済みなので不可。
		if to != OrderStatusCancelled {
			return false
		}
		switch from {
		case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing:
			return true
		}
		return false
	}

	return false
}
