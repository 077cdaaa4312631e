package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type LocationHandler struct {
	uc *usecase.LocationUsecase
}

func NewLocationHandler(uc *usecase.LocationUsecase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

type CreateLocationRequest struct {
	Name string `json:"name"`
}

func (h *LocationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//一覧は登録フォームでも使うので公開
	e.GET("/locations", h.list)

	g := e.Group("/locations")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(model.RoleAdmin))

	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *LocationHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LocationHandler) create(c echo.Context) error {
	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *LocationHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
