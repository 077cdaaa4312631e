package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// OrderUsecase はカートから注文を作るまで（Order Builder）と、自分の注文一覧。
type OrderUsecase struct {
	tx    repo.TransactionManager
	carts repo.CartStore
}

func NewOrderUsecase(tx repo.TransactionManager, carts repo.CartStore) *OrderUsecase {
	return &OrderUsecase{tx: tx, carts: carts}
}

type PlaceOrderInput struct {
	PaymentMethod  string
	PaymentSlipRef string
	IdempotencyKey string
}

type OrderItemOutput struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int64  `json:"quantity"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customer_id"`
	VendorID      int64             `json:"vendor_id"`
	Status        string            `json:"status"`
	TotalAmount   int64             `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrder はカートを不変の注文に変換して保存する。
// 同じキーの再送はまず既存注文を探して返す（カートの状態は見ない）。
// 新規分の検証の順番は固定：カート空 → 支払い方法 → 支払い証明なし。
// 失敗したらカートは一切変更しない。新規作成できてはじめてカートを空にする。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		//キー無しクライアントは毎回新規注文になる
		key = uuid.NewString()
	}
	if len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput
	replayed := false

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//同じキーなら同じ注文を返す。
		//前回のコミットでカートは空になっているので、カートの検証より先に引く。
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, customerID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			replayed = true
			return nil
		}

		cart, ok := u.carts.Get(ctx, customerID)
		if !ok || cart.IsEmpty() {
			return NewHTTPError(http.StatusBadRequest, MsgCartEmpty)
		}

		method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
		if method != model.PaymentMethodPromptPay && method != model.PaymentMethodCash {
			return NewHTTPError(http.StatusBadRequest, "invalid payment_method")
		}

		//PromptPayはスリップ添付が必須
		slipRef := strings.TrimSpace(in.PaymentSlipRef)
		if method == model.PaymentMethodPromptPay && slipRef == "" {
			return NewHTTPError(http.StatusBadRequest, MsgMissingPaymentProof)
		}

		//提出時点で営業中であること
		vendor, err := r.Vendors().FindByID(ctx, cart.VendorID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "unknown vendor")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !vendor.IsOpen {
			return NewHTTPError(http.StatusConflict, MsgShopClosed)
		}

		//カートの中身をメニューと突き合わせてスナップショット化。
		//価格はカートに入れた時点の値をそのまま使う。
		orderItems := make([]model.OrderItem, 0, len(cart.Lines))
		var total int64 = 0
		now := time.Now()

		for _, line := range cart.Lines {
			m, err := r.MenuItems().FindByID(ctx, line.MenuItemID)
			if err == repo.ErrNotFound || (err == nil && !m.IsAvailable) {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				MenuItemID:    line.MenuItemID,
				NameSnapshot:  line.Name,
				PriceSnapshot: line.UnitPrice,
				Quantity:      line.Quantity,
				CreatedAt:     now,
			})

			total += line.UnitPrice * line.Quantity
		}

		// 注文作成。初期ステータスは必ずpending。
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:     customerID,
			VendorID:       cart.VendorID,
			Status:         model.OrderStatusPending,
			TotalAmount:    total,
			PaymentMethod:  method,
			PaymentSlipRef: slipRef,
			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err == repo.ErrDuplicateKey {
			//同時に同じキーが入った。もう一回検索して同じ結果を返す
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, customerID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toOrderOutput(ex2, items2)
				return nil
			}
			return NewHTTPError(http.StatusConflict, "idempotency conflict")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:            orderID,
			CustomerID:    customerID,
			VendorID:      cart.VendorID,
			Status:        model.OrderStatusPending,
			TotalAmount:   total,
			PaymentMethod: method,
			CreatedAt:     now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//新規に確定できたのでカートを空にする（builderではなく呼び出し側の責務）。
	//再送の応答では触らない。次の注文のカートを消してしまうことがある。
	if !replayed {
		u.carts.Delete(ctx, customerID)
	}

	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByCustomerID(ctx, customerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MenuItemID: it.MenuItemID,
			Name:       it.NameSnapshot,
			Price:      it.PriceSnapshot,
			Quantity:   it.Quantity,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		VendorID:      o.VendorID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
