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

	"foodnest/internal/domain/prep"
	"foodnest/internal/infrastructure/database/postgres/models"
)

// PrepRepository implements prep.Repository
type PrepRepository struct {
	db *DB
}

// NewPrepRepository creates a new prep request repository
func NewPrepRepository(db *DB) prep.Repository {
	return &PrepRepository{db: db}
}

func (r *PrepRepository) Create(ctx context.Context, req *prep.PrepRequest) error {
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	snapshot, err := json.Marshal(req.FoodSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode food snapshot: %w", err)
	}

	dbModel := &models.PrepRequestModel{
		ID:                req.ID,
		FoodID:            req.FoodID,
		FoodSnapshot:      datatypes.JSON(snapshot),
		CookID:            req.CookID,
		RequestedBy:       req.RequestedBy,
		Status:            string(req.Status),
		QuantityToPrepare: req.QuantityToPrepare,
		Notes:             req.Notes,
		CreatedAt:         req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create prep request: %w", err)
	}

	return nil
}

func (r *PrepRepository) GetByID(ctx context.Context, id uuid.UUID) (*prep.PrepRequest, error) {
	var dbModel models.PrepRequestModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, prep.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prep request: %w", err)
	}

	return toPrepEntity(&dbModel)
}

func (r *PrepRepository) List(ctx context.Context, filter prep.Filter) ([]*prep.PrepRequest, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.PrepRequestModel{})
	if filter.CookID != nil {
		query = query.Where("cook_id = ?", *filter.CookID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var dbModels []models.PrepRequestModel
	if err := query.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list prep requests: %w", err)
	}

	requests := make([]*prep.PrepRequest, len(dbModels))
	for i := range dbModels {
		req, err := toPrepEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		requests[i] = req
	}

	return requests, nil
}

func (r *PrepRepository) Update(ctx context.Context, req *prep.PrepRequest) error {
	req.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.PrepRequestModel{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"status":              string(req.Status),
			"quantity_to_prepare": req.QuantityToPrepare,
			"notes":               req.Notes,
			"updated_at":          req.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update prep request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return prep.ErrRequestNotFound
	}

	return nil
}

func toPrepEntity(m *models.PrepRequestModel) (*prep.PrepRequest, error) {
	req := &prep.PrepRequest{
		ID:                m.ID,
		FoodID:            m.FoodID,
		CookID:            m.CookID,
		RequestedBy:       m.RequestedBy,
		Status:            prep.Status(m.Status),
		QuantityToPrepare: m.QuantityToPrepare,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if err := json.Unmarshal(m.FoodSnapshot, &req.FoodSnapshot); err != nil {
		return nil, fmt.Errorf("failed to decode food snapshot: %w", err)
	}

	return req, nil
}
