package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	// ステータスのCAS更新で、現在値が期待と違った（レースに負けた）
	ErrStatusConflict = errors.New("status conflict")

	// unique制約違反（同じidempotency keyの同時INSERTなど）
	ErrDuplicateKey = errors.New("duplicate key")
)

// 管理者ログの絞り込み条件。statusとlocationは独立に効く（積集合）。
type AdminOrderListFilter struct {
	Status *model.OrderStatus
	// 注文者（学生）の所属location
	CustomerLocationID *string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByVendorID(ctx context.Context, vendorID int64) ([]model.Order, error)
	ListAll(ctx context.Context, f AdminOrderListFilter) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// UpdateStatusIfCurrent は現在値がfromのときだけtoへ更新する（check-and-set）。
	// 行はあるがfromと違った場合は ErrStatusConflict。
	UpdateStatusIfCurrent(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) error

	//同じキーなら同じ注文を返す（二重送信防止）
	FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error)
}
