package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type VendorGormRepository struct {
	db *gorm.DB
}

func NewVendorGormRepository(db *gorm.DB) *VendorGormRepository {
	return &VendorGormRepository{db: db}
}

func (r *VendorGormRepository) Create(ctx context.Context, vendor model.Vendor) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&vendor).Error; err != nil {
		return 0, err
	}
	return vendor.ID, nil
}

func (r *VendorGormRepository) FindByID(ctx context.Context, vendorID int64) (model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", vendorID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Vendor{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Vendor{}, err
	}
	return v, nil
}

func (r *VendorGormRepository) FindByOwnerUserID(ctx context.Context, ownerUserID int64) (model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Vendor{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Vendor{}, err
	}
	return v, nil
}

func (r *VendorGormRepository) SetOpen(ctx context.Context, vendorID int64, isOpen bool) error {
	res := r.db.WithContext(ctx).Model(&model.Vendor{}).
		Where("id = ?", vendorID).
		Update("is_open", isOpen)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
