package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// VendorOrderUsecase は店側の注文キューとステータス更新。
type VendorOrderUsecase struct {
	tx      repo.TransactionManager
	vendors repo.VendorRepository
}

func NewVendorOrderUsecase(tx repo.TransactionManager, vendors repo.VendorRepository) *VendorOrderUsecase {
	return &VendorOrderUsecase{tx: tx, vendors: vendors}
}

// アクティブな注文だけを4つのタブに振り分けた結果。
// completed / cancelled はキューには出さず、集計値にだけ効く。
type VendorQueueOutput struct {
	Pending   []OrderOutput `json:"pending"`
	Accepted  []OrderOutput `json:"accepted"`
	Preparing []OrderOutput `json:"preparing"`
	Ready     []OrderOutput `json:"ready"`

	PendingCount     int   `json:"pending_count"`
	ActiveCount      int   `json:"active_count"`
	CompletedRevenue int64 `json:"completed_revenue"`
}

type VendorUpdateOrderStatusInput struct {
	Status string
}

// Queue は自分の店の注文を取り直してタブごとに仕分ける。
func (u *VendorOrderUsecase) Queue(ctx context.Context, ownerUserID int64) (VendorQueueOutput, error) {
	if ownerUserID <= 0 {
		return VendorQueueOutput{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}

	vendor, err := u.vendors.FindByOwnerUserID(ctx, ownerUserID)
	if err == repo.ErrNotFound {
		return VendorQueueOutput{}, NewHTTPError(http.StatusNotFound, "shop not found")
	}
	if err != nil {
		return VendorQueueOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := VendorQueueOutput{
		Pending:   []OrderOutput{},
		Accepted:  []OrderOutput{},
		Preparing: []OrderOutput{},
		Ready:     []OrderOutput{},
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByVendorID(ctx, vendor.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		for _, o := range orders {
			// 終端状態は集計だけ
			if o.Status == model.OrderStatusCompleted {
				out.CompletedRevenue += o.TotalAmount
				continue
			}
			if o.Status == model.OrderStatusCancelled {
				continue
			}

			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			oo := toOrderOutput(o, items)

			switch o.Status {
			case model.OrderStatusPending:
				out.Pending = append(out.Pending, oo)
			case model.OrderStatusAccepted:
				out.Accepted = append(out.Accepted, oo)
			case model.OrderStatusPreparing:
				out.Preparing = append(out.Preparing, oo)
			case model.OrderStatusReady:
				out.Ready = append(out.Ready, oo)
			}
		}
		return nil
	})

	if err != nil {
		return VendorQueueOutput{}, err
	}

	out.PendingCount = len(out.Pending)
	out.ActiveCount = len(out.Accepted) + len(out.Preparing) + len(out.Ready)
	return out, nil
}

// UpdateStatus は店主による遷移。遷移表のチェックと、
// 現在値つきのcheck-and-set更新で同時更新の負けを検出する。
func (u *VendorOrderUsecase) UpdateStatus(ctx context.Context, ownerUserID int64, orderID int64, in VendorUpdateOrderStatusInput) (OrderOutput, error) {
	if ownerUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target := model.OrderStatus(in.Status)
	if !model.IsValidStatus(target) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	vendor, err := u.vendors.FindByOwnerUserID(ctx, ownerUserID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "shop not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//他店の注文は「存在しない扱い」にする
		if o.VendorID != vendor.ID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if !model.CanTransition(model.ActorVendor, o.Status, target) {
			return NewHTTPError(http.StatusConflict, MsgIllegalTransition)
		}

		err = r.Orders().UpdateStatusIfCurrent(ctx, orderID, o.Status, target)
		if err == repo.ErrStatusConflict {
			//読んだ後に誰かが先に変えた
			return NewHTTPError(http.StatusConflict, MsgIllegalTransition)
		}
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//更新後のレコードを返す（クライアントはこれで表示を差し替える）
		o.Status = target
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
