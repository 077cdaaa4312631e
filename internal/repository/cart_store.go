package repository

import (
	"context"

	"app/internal/domain/model"
)

// CartStore はアクティブなカートの置き場所。
// カートは注文前の一時状態なのでDBには入れない（メモリ実装だけ）。
// 1顧客につきアクティブなカートは1つ。別の店舗のカートをSaveしたら前のは消える。
type CartStore interface {
	// 無ければ (nil, false)
	Get(ctx context.Context, customerID int64) (*model.Cart, bool)
	Save(ctx context.Context, cart *model.Cart)
	Delete(ctx context.Context, customerID int64)
}
