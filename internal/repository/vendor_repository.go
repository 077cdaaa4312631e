package repository

import (
	"context"

	"app/internal/domain/model"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor model.Vendor) (int64, error)
	FindByID(ctx context.Context, vendorID int64) (model.Vendor, error)
	FindByOwnerUserID(ctx context.Context, ownerUserID int64) (model.Vendor, error)
	//営業フラグの切り替え。更新後の値を返す。
	SetOpen(ctx context.Context, vendorID int64, isOpen bool) error
}
