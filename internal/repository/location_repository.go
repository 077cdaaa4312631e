package repository

import (
	"context"

	"app/internal/domain/model"
)

type LocationRepository interface {
	Create(ctx context.Context, loc model.Location) (int64, error)
	List(ctx context.Context) ([]model.Location, error)
	Delete(ctx context.Context, locationID int64) error
}
