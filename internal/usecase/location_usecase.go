package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// LocationUsecase はキャンパス内の場所リストの管理。
type LocationUsecase struct {
	locations repo.LocationRepository
}

func NewLocationUsecase(locations repo.LocationRepository) *LocationUsecase {
	return &LocationUsecase{locations: locations}
}

type LocationOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (u *LocationUsecase) List(ctx context.Context) ([]LocationOutput, error) {
	locs, err := u.locations.List(ctx)
	if err != nil {
		return []LocationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]LocationOutput, 0, len(locs))
	for _, l := range locs {
		outs = append(outs, LocationOutput{ID: l.ID, Name: l.Name})
	}
	return outs, nil
}

func (u *LocationUsecase) Create(ctx context.Context, name string) (LocationOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return LocationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	id, err := u.locations.Create(ctx, model.Location{Name: name})
	if err != nil {
		return LocationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LocationOutput{ID: id, Name: name}, nil
}

func (u *LocationUsecase) Delete(ctx context.Context, locationID int64) error {
	if locationID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.locations.Delete(ctx, locationID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
