package repository

import (
	"context"

	"app/internal/domain/model"
)

// メニューは読み取りだけ。CRUDは本体の外。
type MenuItemRepository interface {
	FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error)
	ListByVendorID(ctx context.Context, vendorID int64) ([]model.MenuItem, error)
}
