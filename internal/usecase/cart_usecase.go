package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase はカート操作の業務ロジック。
// カート本体（model.Cart）は純粋なコレクションなので、
// 店舗の開閉チェックや商品情報の解決はここでやる。
type CartUsecase struct {
	carts     repo.CartStore
	vendors   repo.VendorRepository
	menuItems repo.MenuItemRepository
}

func NewCartUsecase(
	carts repo.CartStore,
	vendors repo.VendorRepository,
	menuItems repo.MenuItemRepository,
) *CartUsecase {
	return &CartUsecase{
		carts:     carts,
		vendors:   vendors,
		menuItems: menuItems,
	}
}

type CartLineResponse struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int64  `json:"quantity"`
}

type CartResponse struct {
	VendorID   int64              `json:"vendor_id"`
	Lines      []CartLineResponse `json:"lines"`
	TotalItems int64              `json:"total_items"`
	Total      int64              `json:"total"`
}

// GetCart はカート取得。無ければ空で返す。
func (u *CartUsecase) GetCart(ctx context.Context, customerID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}

	cart, ok := u.carts.Get(ctx, customerID)
	if !ok {
		return CartResponse{Lines: []CartLineResponse{}}, nil
	}
	return toCartResponse(cart), nil
}

// AddItem はカートに1個追加（同一商品は数量加算）。
// 名前と価格はクライアントの申告ではなくメニューから引き直す。
func (u *CartUsecase) AddItem(ctx context.Context, customerID int64, menuItemID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}
	if menuItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid menu_item_id")
	}

	item, err := u.menuItems.FindByID(ctx, menuItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !item.IsAvailable {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	//閉店中は追加できない
	vendor, err := u.vendors.FindByID(ctx, item.VendorID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !vendor.IsOpen {
		return CartResponse{}, NewHTTPError(http.StatusConflict, MsgShopClosed)
	}

	cart, ok := u.carts.Get(ctx, customerID)
	if !ok || cart.VendorID != item.VendorID {
		//別の店舗を選んだら新しいカートで始める
		cart = model.NewCart(customerID, item.VendorID)
	}

	cart.Add(item.ID, item.Name, item.Price)
	u.carts.Save(ctx, cart)

	return toCartResponse(cart), nil
}

// RemoveItem は数量-1（1だったら行ごと削除）。無い商品なら何もしない。
func (u *CartUsecase) RemoveItem(ctx context.Context, customerID int64, menuItemID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}

	cart, ok := u.carts.Get(ctx, customerID)
	if !ok {
		return CartResponse{Lines: []CartLineResponse{}}, nil
	}

	cart.Remove(menuItemID)
	u.carts.Save(ctx, cart)

	return toCartResponse(cart), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}

	u.carts.Delete(ctx, customerID)
	return nil
}

func toCartResponse(cart *model.Cart) CartResponse {
	lines := make([]CartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, CartLineResponse{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
		})
	}

	return CartResponse{
		VendorID:   cart.VendorID,
		Lines:      lines,
		TotalItems: cart.TotalItems(),
		Total:      cart.TotalAmount(),
	}
}
