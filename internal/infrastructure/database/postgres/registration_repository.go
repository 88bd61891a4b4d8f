package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodnest/internal/domain/user"
	"foodnest/internal/infrastructure/database/postgres/models"
)

// RegistrationRequestRepository implements user.RegistrationRequestRepository
type RegistrationRequestRepository struct {
	db *DB
}

// NewRegistrationRequestRepository creates a new registration request repository
func NewRegistrationRequestRepository(db *DB) user.RegistrationRequestRepository {
	return &RegistrationRequestRepository{db: db}
}

func (r *RegistrationRequestRepository) Create(ctx context.Context, req *user.RegistrationRequest) error {
	req.ID = uuid.New()
	req.CreatedAt = time.Now()

	dbModel := &models.RegistrationRequestModel{
		ID:           req.ID,
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: req.PasswordHash,
		CreatedAt:    req.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create registration request: %w", err)
	}

	return nil
}

func (r *RegistrationRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.RegistrationRequest, error) {
	var dbModel models.RegistrationRequestModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration request: %w", err)
	}

	return toRegistrationEntity(&dbModel), nil
}

func (r *RegistrationRequestRepository) GetByEmail(ctx context.Context, email string) (*user.RegistrationRequest, error) {
	var dbModel models.RegistrationRequestModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration request: %w", err)
	}

	return toRegistrationEntity(&dbModel), nil
}

func (r *RegistrationRequestRepository) GetAll(ctx context.Context) ([]*user.RegistrationRequest, error) {
	var dbModels []models.RegistrationRequestModel
	err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list registration requests: %w", err)
	}

	requests := make([]*user.RegistrationRequest, len(dbModels))
	for i, dbModel := range dbModels {
		requests[i] = toRegistrationEntity(&dbModel)
	}

	return requests, nil
}

func (r *RegistrationRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.RegistrationRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete registration request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrRequestNotFound
	}

	return nil
}

func toRegistrationEntity(m *models.RegistrationRequestModel) *user.RegistrationRequest {
	return &user.RegistrationRequest{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
