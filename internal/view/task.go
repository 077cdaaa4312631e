package view

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

// RefreshTask は一定間隔で読み取りモデルを作り直すバックグラウンドタスク。
// 画面のライフサイクルに埋め込まず、自分のStart/Stopを持つ。
// 取得失敗はログに残すだけで、次のtickに任せる（自己回復）。
type RefreshTask struct {
	name     string
	interval time.Duration
	refresh  func(ctx context.Context) error
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefreshTask(name string, interval time.Duration, logger *log.Logger, refresh func(ctx context.Context) error) *RefreshTask {
	return &RefreshTask{
		name:     name,
		interval: interval,
		refresh:  refresh,
		logger:   logger,
	}
}

// Start はまず1回すぐ取得して、その後interval毎に回す。二重Startは無視。
func (t *RefreshTask) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.run(runCtx, t.done)
}

// Stop はタスクを止めてループの終了を待つ。画面を離れたら必ず呼ぶ。
func (t *RefreshTask) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *RefreshTask) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	t.tick(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

func (t *RefreshTask) tick(ctx context.Context) {
	if err := t.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		t.logger.Errorf("%s: refresh failed, will retry next tick: %v", t.name, err)
	}
}
