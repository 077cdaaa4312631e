package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo}
}

type AdminOrderListInput struct {
	Status   string
	Location string
}

// 管理者向けには注文者の所属locationも付ける（画面のフィルタで使う）。
type AdminOrderOutput struct {
	OrderOutput
	CustomerLocationID string `json:"customer_location_id"`
}

type AdminStatsOutput struct {
	TotalOrders     int                `json:"total_orders"`
	CompletedOrders int                `json:"completed_orders"`
	TotalRevenue    int64              `json:"total_revenue"`
	FulfillmentRate float64            `json:"fulfillment_rate"`
	Orders          []AdminOrderOutput `json:"orders"`
}

// List は全注文ログ。statusと注文者locationは独立したフィルタで、両方指定なら積集合。
// 0件は正常な結果（エラーではない）。
func (u *AdminOrderUsecase) List(ctx context.Context, in AdminOrderListInput) ([]AdminOrderOutput, error) {
	f := repo.AdminOrderListFilter{}

	status := strings.TrimSpace(in.Status)
	if status != "" && status != "all" {
		s := model.OrderStatus(status)
		if !model.IsValidStatus(s) {
			return []AdminOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		f.Status = &s
	}

	loc := strings.TrimSpace(in.Location)
	if loc != "" && loc != "ALL" {
		f.CustomerLocationID = &loc
	}

	var outs []AdminOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じ注文者を何度も引かないように覚えておく
		locByCustomer := map[int64]string{}

		outs = make([]AdminOrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			custLoc, ok := locByCustomer[o.CustomerID]
			if !ok {
				user, err := r.Users().FindByID(ctx, o.CustomerID)
				if err != nil && err != repo.ErrNotFound {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err == nil {
					custLoc = user.LocationID
				}
				locByCustomer[o.CustomerID] = custLoc
			}

			outs = append(outs, AdminOrderOutput{
				OrderOutput:        toOrderOutput(o, items),
				CustomerLocationID: custLoc,
			})
		}
		return nil
	})

	if err != nil {
		return []AdminOrderOutput{}, err
	}
	return outs, nil
}

// Stats は管理画面のトップに出す集計。
func (u *AdminOrderUsecase) Stats(ctx context.Context) (AdminStatsOutput, error) {
	orders, err := u.List(ctx, AdminOrderListInput{})
	if err != nil {
		return AdminStatsOutput{}, err
	}

	out := AdminStatsOutput{Orders: orders}
	out.TotalOrders = len(orders)

	for _, o := range orders {
		if o.Status == string(model.OrderStatusCompleted) {
			out.CompletedOrders++
			out.TotalRevenue += o.TotalAmount
		}
	}
	if out.TotalOrders > 0 {
		out.FulfillmentRate = float64(out.CompletedOrders) / float64(out.TotalOrders) * 100
	}

	return out, nil
}

// ForceCancel は管理者の強制キャンセル。
// readyまで進んだ注文は調理済みなのでキャンセルできない（遷移表どおり）。
func (u *AdminOrderUsecase) ForceCancel(ctx context.Context, actorAdminUserID int64, orderID int64) (OrderOutput, error) {
	if actorAdminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !model.CanTransition(model.ActorAdmin, o.Status, model.OrderStatusCancelled) {
			return NewHTTPError(http.StatusConflict, MsgIllegalTransition)
		}

		err = r.Orders().UpdateStatusIfCurrent(ctx, orderID, o.Status, model.OrderStatusCancelled)
		if err == repo.ErrStatusConflict {
			return NewHTTPError(http.StatusConflict, MsgIllegalTransition)
		}
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// ★監査ログ（FORCE_CANCEL_ORDER）
		beforeJSON := `{"status":"` + string(o.Status) + `"}`
		afterJSON := `{"status":"` + string(model.OrderStatusCancelled) + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionForceCancelOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
