package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodnest/internal/domain/food"
	"foodnest/internal/infrastructure/database/postgres/models"
)

// ComboRepository implements food.ComboRepository
type ComboRepository struct {
	db *DB
}

// NewComboRepository creates a new combo repository
func NewComboRepository(db *DB) food.ComboRepository {
	return &ComboRepository{db: db}
}

func (r *ComboRepository) Create(ctx context.Context, combo *food.Combo, itemIDs []uuid.UUID) error {
	combo.ID = uuid.New()
	combo.CreatedAt = time.Now()
	combo.UpdatedAt = time.Now()

	items := make([]models.FoodModel, len(itemIDs))
	for i, id := range itemIDs {
		items[i] = models.FoodModel{ID: id}
	}

	dbModel := &models.ComboModel{
		ID:        combo.ID,
		Name:      combo.Name,
		Price:     combo.Price,
		Status:    combo.Status,
		Items:     items,
		CreatedAt: combo.CreatedAt,
		UpdatedAt: combo.UpdatedAt,
	}

	// Associate existing food rows only; never upsert them from here.
	err := r.db.DB.WithContext(ctx).
		Omit("Items.*").
		Create(dbModel).Error
	if err != nil {
		return fmt.Errorf("failed to create combo: %w", err)
	}

	return nil
}

func (r *ComboRepository) GetByID(ctx context.Context, id uuid.UUID) (*food.Combo, error) {
	var dbModel models.ComboModel
	err := r.db.DB.WithContext(ctx).Preload("Items").First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, food.ErrComboNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get combo: %w", err)
	}

	return toComboEntity(&dbModel)
}

func (r *ComboRepository) GetAll(ctx context.Context) ([]*food.Combo, error) {
	var dbModels []models.ComboModel
	err := r.db.DB.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list combos: %w", err)
	}

	combos := make([]*food.Combo, len(dbModels))
	for i := range dbModels {
		combo, err := toComboEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		combos[i] = combo
	}

	return combos, nil
}

func (r *ComboRepository) Update(ctx context.Context, combo *food.Combo, itemIDs []uuid.UUID) error {
	combo.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.ComboModel{}).
		Where("id = ?", combo.ID).
		Updates(map[string]interface{}{
			"name":       combo.Name,
			"price":      combo.Price,
			"status":     combo.Status,
			"updated_at": combo.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update combo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return food.ErrComboNotFound
	}

	if itemIDs != nil {
		items := make([]models.FoodModel, len(itemIDs))
		for i, id := range itemIDs {
			items[i] = models.FoodModel{ID: id}
		}
		err := r.db.DB.WithContext(ctx).
			Model(&models.ComboModel{ID: combo.ID}).
			Association("Items").
			Replace(items)
		if err != nil {
			return fmt.Errorf("failed to replace combo items: %w", err)
		}
	}

	return nil
}

func (r *ComboRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Model(&models.ComboModel{ID: id}).
		Association("Items").
		Clear()
	if err != nil {
		return fmt.Errorf("failed to clear combo items: %w", err)
	}

	result := r.db.DB.WithContext(ctx).Delete(&models.ComboModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete combo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return food.ErrComboNotFound
	}

	return nil
}

func toComboEntity(m *models.ComboModel) (*food.Combo, error) {
	items, err := toFoodEntities(m.Items)
	if err != nil {
		return nil, err
	}

	return &food.Combo{
		ID:        m.ID,
		Name:      m.Name,
		Items:     items,
		Price:     m.Price,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
