package view

import (
	"context"
	"sync"
	"time"

	"app/internal/usecase"

	"github.com/labstack/gommon/log"
)

// 学生の注文一覧画面の更新間隔。
const customerRefreshInterval = 5 * time.Second

type CustomerOrderLister interface {
	ListMyOrders(ctx context.Context, customerID int64) ([]usecase.OrderOutput, error)
}

// CustomerOrdersView は学生が見る自分の注文一覧の読み取りモデル。
// 毎回の取得で一覧を丸ごと差し替える。差分マージはしない。
type CustomerOrdersView struct {
	customerID int64
	lister     CustomerOrderLister

	mu     sync.RWMutex
	orders []usecase.OrderOutput

	task *RefreshTask
}

func NewCustomerOrdersView(customerID int64, lister CustomerOrderLister, logger *log.Logger) *CustomerOrdersView {
	v := &CustomerOrdersView{
		customerID: customerID,
		lister:     lister,
		orders:     []usecase.OrderOutput{},
	}
	v.task = NewRefreshTask("customer-orders", customerRefreshInterval, logger, v.refresh)
	return v
}

func (v *CustomerOrdersView) Start(ctx context.Context) { v.task.Start(ctx) }
func (v *CustomerOrdersView) Stop()                     { v.task.Stop() }

// Snapshot は現在の一覧のコピーを返す。
func (v *CustomerOrdersView) Snapshot() []usecase.OrderOutput {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return append([]usecase.OrderOutput{}, v.orders...)
}

func (v *CustomerOrdersView) refresh(ctx context.Context) error {
	orders, err := v.lister.ListMyOrders(ctx, v.customerID)
	if err != nil {
		//失敗時は手元のスナップショットに触らない
		return err
	}

	v.mu.Lock()
	v.orders = orders
	v.mu.Unlock()
	return nil
}
