package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type LocationGormRepository struct {
	db *gorm.DB
}

func NewLocationGormRepository(db *gorm.DB) *LocationGormRepository {
	return &LocationGormRepository{db: db}
}

func (r *LocationGormRepository) Create(ctx context.Context, loc model.Location) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&loc).Error; err != nil {
		return 0, err
	}
	return loc.ID, nil
}

func (r *LocationGormRepository) List(ctx context.Context) ([]model.Location, error) {
	var items []model.Location
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Location{}, err
	}
	return items, nil
}

func (r *LocationGormRepository) Delete(ctx context.Context, locationID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", locationID).Delete(&model.Location{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
