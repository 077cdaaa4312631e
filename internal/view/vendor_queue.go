package view

import (
	"context"
	"sync"
	"time"

	"app/internal/usecase"

	"github.com/labstack/gommon/log"
)

const vendorRefreshInterval = 5 * time.Second

type VendorQueueFetcher interface {
	Queue(ctx context.Context, ownerUserID int64) (usecase.VendorQueueOutput, error)
}

// VendorQueueView は店のダッシュボードの読み取りモデル。
// タブ分け（pending/accepted/preparing/ready）と集計はusecase側でやった結果を
// そのまま丸ごと差し替えて持つ。
type VendorQueueView struct {
	ownerUserID int64
	fetcher     VendorQueueFetcher

	mu    sync.RWMutex
	queue usecase.VendorQueueOutput

	task *RefreshTask
}

func NewVendorQueueView(ownerUserID int64, fetcher VendorQueueFetcher, logger *log.Logger) *VendorQueueView {
	v := &VendorQueueView{
		ownerUserID: ownerUserID,
		fetcher:     fetcher,
		queue: usecase.VendorQueueOutput{
			Pending:   []usecase.OrderOutput{},
			Accepted:  []usecase.OrderOutput{},
			Preparing: []usecase.OrderOutput{},
			Ready:     []usecase.OrderOutput{},
		},
	}
	v.task = NewRefreshTask("vendor-queue", vendorRefreshInterval, logger, v.refresh)
	return v
}

func (v *VendorQueueView) Start(ctx context.Context) { v.task.Start(ctx) }
func (v *VendorQueueView) Stop()                     { v.task.Stop() }

func (v *VendorQueueView) Snapshot() usecase.VendorQueueOutput {
	v.mu.RLock()
	defer v.mu.RUnlock()

	q := v.queue
	q.Pending = append([]usecase.OrderOutput{}, v.queue.Pending...)
	q.Accepted = append([]usecase.OrderOutput{}, v.queue.Accepted...)
	q.Preparing = append([]usecase.OrderOutput{}, v.queue.Preparing...)
	q.Ready = append([]usecase.OrderOutput{}, v.queue.Ready...)
	return q
}

func (v *VendorQueueView) refresh(ctx context.Context) error {
	q, err := v.fetcher.Queue(ctx, v.ownerUserID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.queue = q
	v.mu.Unlock()
	return nil
}
