package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mwalcott/motorlot/internal/models"
)

type InventoryRepo struct {
	DB *gorm.DB
}

func (r *InventoryRepo) Classifications(ctx context.Context) ([]models.Classification, error) {
	var out []models.Classification
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing classifications: %w", err)
	}
	return out, nil
}

func (r *InventoryRepo) ClassificationByID(ctx context.Context, id uint) (models.Classification, error) {
	var cl models.Classification
	if err := r.DB.WithContext(ctx).First(&cl, id).Error; err != nil {
		return models.Classification{}, translate(err)
	}
	return cl, nil
}

func (r *InventoryRepo) AddClassification(ctx context.Context, cl *models.Classification) error {
	if err := r.DB.WithContext(ctx).Create(cl).Error; err != nil {
		return fmt.Errorf("creating classification: %w", err)
	}
	return nil
}

func (r *InventoryRepo) VehiclesByClassification(ctx context.Context, classificationID uint) ([]models.Vehicle, error) {
	var out []models.Vehicle
	if err := r.DB.WithContext(ctx).
		Where("classification_id = ?", classificationID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	return out, nil
}

func (r *InventoryRepo) VehicleByID(ctx context.Context, id uint) (models.Vehicle, error) {
	var v models.Vehicle
	if err := r.DB.WithContext(ctx).First(&v, id).Error; err != nil {
		return models.Vehicle{}, translate(err)
	}
	return v, nil
}

func (r *InventoryRepo) AddVehicle(ctx context.Context, v *models.Vehicle) error {
	if err := r.DB.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("creating vehicle: %w", err)
	}
	return nil
}

func (r *InventoryRepo) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	var existing models.Vehicle
	if err := r.DB.WithContext(ctx).First(&existing, v.ID).Error; err != nil {
		return translate(err)
	}
	if err := r.DB.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("updating vehicle: %w", err)
	}
	return nil
}

func (r *InventoryRepo) DeleteVehicle(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Vehicle{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) CountClassifications(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Classification{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("counting classifications: %w", err)
	}
	return total, nil
}
