package handler

import (
	"net/http"
	"strconv"
	"strings"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"
	"app/internal/view"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc  *usecase.AdminOrderUsecase
	log *view.AdminOrderLogView
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, log *view.AdminOrderLogView) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, log: log}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RoleGuard(model.RoleAdmin))

	admin.GET("/orders", h.list)
	admin.GET("/stats", h.stats)
	admin.PUT("/orders/:id/cancel", h.forceCancel)
}

// 一覧は10秒ポーリングの読み取りモデルから返す（多少古くてもよい画面）。
// フィルタは取得済みの全件に対して表示時に効かせる。
func (h *AdminOrderHandler) list(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	//未知のstatusは黙って0件にしない
	if status != "" && status != "all" && !model.IsValidStatus(model.OrderStatus(status)) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	out := h.log.Filtered(status, c.QueryParam("location"))
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) forceCancel(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ForceCancel(c.Request().Context(), adminID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
