package repository

import (
	"context"
	"sync"

	"app/internal/domain/model"
)

// CartMemoryStore は顧客IDごとのアクティブカート。
// カートはセッション的な一時状態なのでプロセス内メモリで持つ。
type CartMemoryStore struct {
	mu    sync.RWMutex
	carts map[int64]*model.Cart
}

func NewCartMemoryStore() *CartMemoryStore {
	return &CartMemoryStore{carts: map[int64]*model.Cart{}}
}

func (s *CartMemoryStore) Get(ctx context.Context, customerID int64) (*model.Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[customerID]
	if !ok {
		return nil, false
	}

	//呼び出し側が自由にいじれるようコピーを返す
	cp := *c
	cp.Lines = append([]model.CartLine{}, c.Lines...)
	return &cp, true
}

func (s *CartMemoryStore) Save(ctx context.Context, cart *model.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *cart
	cp.Lines = append([]model.CartLine{}, cart.Lines...)
	s.carts[cart.CustomerID] = &cp
}

func (s *CartMemoryStore) Delete(ctx context.Context, customerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, customerID)
}
