package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"foodnest/internal/domain/food"
	"foodnest/internal/infrastructure/database/postgres/models"
)

// FoodRepository implements food.Repository
type FoodRepository struct {
	db *DB
}

// NewFoodRepository creates a new food repository
func NewFoodRepository(db *DB) food.Repository {
	return &FoodRepository{db: db}
}

func (r *FoodRepository) Create(ctx context.Context, item *food.FoodItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	dbModel, err := toFoodModel(item)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create food item: %w", err)
	}

	return nil
}

func (r *FoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*food.FoodItem, error) {
	var dbModel models.FoodModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, food.ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	return toFoodEntity(&dbModel)
}

func (r *FoodRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*food.FoodItem, error) {
	var dbModels []models.FoodModel
	err := r.db.DB.WithContext(ctx).Where("id IN ?", ids).Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get food items: %w", err)
	}

	return toFoodEntities(dbModels)
}

func (r *FoodRepository) GetAll(ctx context.Context) ([]*food.FoodItem, error) {
	var dbModels []models.FoodModel
	err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}

	return toFoodEntities(dbModels)
}

func (r *FoodRepository) Update(ctx context.Context, item *food.FoodItem) error {
	item.UpdatedAt = time.Now()

	dbModel, err := toFoodModel(item)
	if err != nil {
		return err
	}

	result := r.db.DB.WithContext(ctx).Model(&models.FoodModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":           dbModel.Name,
			"price":          dbModel.Price,
			"category":       dbModel.Category,
			"available":      dbModel.Available,
			"tax":            dbModel.Tax,
			"image_url":      dbModel.ImageURL,
			"image_path":     dbModel.ImagePath,
			"raw_materials":  dbModel.RawMaterials,
			"total_quantity": dbModel.TotalQuantity,
			"per_serving":    dbModel.PerServing,
			"updated_at":     dbModel.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update food item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return food.ErrFoodNotFound
	}

	return nil
}

func (r *FoodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.FoodModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete food item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return food.ErrFoodNotFound
	}

	return nil
}

func toFoodModel(item *food.FoodItem) (*models.FoodModel, error) {
	rawMaterials, err := json.Marshal(item.RawMaterials)
	if err != nil {
		return nil, fmt.Errorf("failed to encode raw materials: %w", err)
	}

	dbModel := &models.FoodModel{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.Price,
		Category:     item.Category,
		Available:    item.Available,
		Tax:          item.Tax,
		ImageURL:     item.ImageURL,
		ImagePath:    item.ImagePath,
		RawMaterials: datatypes.JSON(rawMaterials),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}

	if item.TotalQuantity != nil {
		encoded, err := json.Marshal(item.TotalQuantity)
		if err != nil {
			return nil, fmt.Errorf("failed to encode total quantity: %w", err)
		}
		dbModel.TotalQuantity = datatypes.JSON(encoded)
	}
	if item.PerServing != nil {
		encoded, err := json.Marshal(item.PerServing)
		if err != nil {
			return nil, fmt.Errorf("failed to encode per serving: %w", err)
		}
		dbModel.PerServing = datatypes.JSON(encoded)
	}

	return dbModel, nil
}

func toFoodEntity(m *models.FoodModel) (*food.FoodItem, error) {
	item := &food.FoodItem{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Category:  m.Category,
		Available: m.Available,
		Tax:       m.Tax,
		ImageURL:  m.ImageURL,
		ImagePath: m.ImagePath,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if len(m.RawMaterials) > 0 {
		if err := json.Unmarshal(m.RawMaterials, &item.RawMaterials); err != nil {
			return nil, fmt.Errorf("failed to decode raw materials: %w", err)
		}
	}
	if len(m.TotalQuantity) > 0 {
		item.TotalQuantity = &food.Quantity{}
		if err := json.Unmarshal(m.TotalQuantity, item.TotalQuantity); err != nil {
			return nil, fmt.Errorf("failed to decode total quantity: %w", err)
		}
	}
	if len(m.PerServing) > 0 {
		item.PerServing = &food.Quantity{}
		if err := json.Unmarshal(m.PerServing, item.PerServing); err != nil {
			return nil, fmt.Errorf("failed to decode per serving: %w", err)
		}
	}

	return item, nil
}

func toFoodEntities(dbModels []models.FoodModel) ([]*food.FoodItem, error) {
	items := make([]*food.FoodItem, len(dbModels))
	for i := range dbModels {
		item, err := toFoodEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}
