package view

import (
	"context"
	"sync"
	"time"

	"app/internal/usecase"

	"github.com/labstack/gommon/log"
)

const adminRefreshInterval = 10 * time.Second

type AdminOrderLister interface {
	List(ctx context.Context, in usecase.AdminOrderListInput) ([]usecase.AdminOrderOutput, error)
}

// AdminOrderLogView は管理画面の全注文ログ。
// 取得は常に全件で、statusとlocationの絞り込みは表示時に積集合で適用する。
// どの組み合わせでも0件は正常な結果。
type AdminOrderLogView struct {
	lister AdminOrderLister

	mu     sync.RWMutex
	orders []usecase.AdminOrderOutput

	task *RefreshTask
}

func NewAdminOrderLogView(lister AdminOrderLister, logger *log.Logger) *AdminOrderLogView {
	v := &AdminOrderLogView{
		lister: lister,
		orders: []usecase.AdminOrderOutput{},
	}
	v.task = NewRefreshTask("admin-order-log", adminRefreshInterval, logger, v.refresh)
	return v
}

func (v *AdminOrderLogView) Start(ctx context.Context) { v.task.Start(ctx) }
func (v *AdminOrderLogView) Stop()                     { v.task.Stop() }

func (v *AdminOrderLogView) Snapshot() []usecase.AdminOrderOutput {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return append([]usecase.AdminOrderOutput{}, v.orders...)
}

// Filtered はstatusとlocationの両方を満たす注文だけ返す。
// "all" / "ALL" / 空文字はそのフィルタを無効にする。
func (v *AdminOrderLogView) Filtered(status string, location string) []usecase.AdminOrderOutput {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := []usecase.AdminOrderOutput{}
	for _, o := range v.orders {
		if status != "" && status != "all" && o.Status != status {
			continue
		}
		if location != "" && location != "ALL" && o.CustomerLocationID != location {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (v *AdminOrderLogView) refresh(ctx context.Context) error {
	orders, err := v.lister.List(ctx, usecase.AdminOrderListInput{})
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.orders = orders
	v.mu.Unlock()
	return nil
}
