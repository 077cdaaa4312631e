package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// VendorUsecase は店舗の公開情報（営業フラグ・メニュー）と店主の操作。
type VendorUsecase struct {
	vendors   repo.VendorRepository
	menuItems repo.MenuItemRepository
}

func NewVendorUsecase(vendors repo.VendorRepository, menuItems repo.MenuItemRepository) *VendorUsecase {
	return &VendorUsecase{vendors: vendors, menuItems: menuItems}
}

type VendorOpenStateResponse struct {
	VendorID int64 `json:"vendor_id"`
	IsOpen   bool  `json:"is_open"`
}

type RegisterShopInput struct {
	ShopName   string
	LocationID string
}

type VendorOutput struct {
	ID         int64  `json:"id"`
	ShopName   string `json:"shop_name"`
	LocationID string `json:"location_id"`
	IsOpen     bool   `json:"is_open"`
}

// RegisterShop は店主アカウントに店舗を1つ紐づける。閉店状態で作る。
func (u *VendorUsecase) RegisterShop(ctx context.Context, ownerUserID int64, in RegisterShopInput) (VendorOutput, error) {
	if ownerUserID <= 0 {
		return VendorOutput{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}
	if in.ShopName == "" {
		return VendorOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shop_name")
	}

	//1人1店舗
	if _, err := u.vendors.FindByOwnerUserID(ctx, ownerUserID); err == nil {
		return VendorOutput{}, NewHTTPError(http.StatusConflict, "shop already exists")
	} else if err != repo.ErrNotFound {
		return VendorOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	id, err := u.vendors.Create(ctx, model.Vendor{
		OwnerUserID: ownerUserID,
		ShopName:    in.ShopName,
		LocationID:  in.LocationID,
		IsOpen:      false,
	})
	if err != nil {
		return VendorOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return VendorOutput{ID: id, ShopName: in.ShopName, LocationID: in.LocationID, IsOpen: false}, nil
}

// GetOpenState は誰でも見られる。カート画面が追加ボタンの活性に使う。
func (u *VendorUsecase) GetOpenState(ctx context.Context, vendorID int64) (VendorOpenStateResponse, error) {
	if vendorID <= 0 {
		return VendorOpenStateResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	v, err := u.vendors.FindByID(ctx, vendorID)
	if err == repo.ErrNotFound {
		return VendorOpenStateResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return VendorOpenStateResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return VendorOpenStateResponse{VendorID: v.ID, IsOpen: v.IsOpen}, nil
}

type MenuItemOutput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	IsAvailable bool   `json:"is_available"`
}

// ListMenu は店舗のメニュー一覧。閉店中でも見られる（注文はできない）。
func (u *VendorUsecase) ListMenu(ctx context.Context, vendorID int64) ([]MenuItemOutput, error) {
	if vendorID <= 0 {
		return []MenuItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.vendors.FindByID(ctx, vendorID); err == repo.ErrNotFound {
		return []MenuItemOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	} else if err != nil {
		return []MenuItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.menuItems.ListByVendorID(ctx, vendorID)
	if err != nil {
		return []MenuItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]MenuItemOutput, 0, len(items))
	for _, m := range items {
		outs = append(outs, MenuItemOutput{
			ID:          m.ID,
			Name:        m.Name,
			Price:       m.Price,
			IsAvailable: m.IsAvailable,
		})
	}
	return outs, nil
}

// ToggleMyShop は店主が自分の店の営業フラグを反転する。
func (u *VendorUsecase) ToggleMyShop(ctx context.Context, ownerUserID int64) (VendorOpenStateResponse, error) {
	if ownerUserID <= 0 {
		return VendorOpenStateResponse{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}

	v, err := u.vendors.FindByOwnerUserID(ctx, ownerUserID)
	if err == repo.ErrNotFound {
		return VendorOpenStateResponse{}, NewHTTPError(http.StatusNotFound, "shop not found")
	}
	if err != nil {
		return VendorOpenStateResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	next := !v.IsOpen
	if err := u.vendors.SetOpen(ctx, v.ID, next); err != nil {
		return VendorOpenStateResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return VendorOpenStateResponse{VendorID: v.ID, IsOpen: next}, nil
}
