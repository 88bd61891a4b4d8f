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

// ResetCodeRepository implements user.ResetCodeRepository
type ResetCodeRepository struct {
	db *DB
}

// NewResetCodeRepository creates a new reset code repository
func NewResetCodeRepository(db *DB) user.ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

func (r *ResetCodeRepository) Create(ctx context.Context, code *user.ResetCode) error {
	code.ID = uuid.New()
	code.CreatedAt = time.Now()

	dbModel := &models.ResetCodeModel{
		ID:        code.ID,
		Email:     code.Email,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
		Attempts:  code.Attempts,
		Consumed:  code.Consumed,
		CreatedAt: code.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create reset code: %w", err)
	}

	code.ID = dbModel.ID
	code.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *ResetCodeRepository) GetLatestActive(ctx context.Context, email string) (*user.ResetCode, error) {
	var dbModel models.ResetCodeModel
	err := r.db.DB.WithContext(ctx).
		Where("email = ? AND consumed = false", email).
		Order("created_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrResetCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset code: %w", err)
	}

	return &user.ResetCode{
		ID:        dbModel.ID,
		Email:     dbModel.Email,
		Code:      dbModel.Code,
		ExpiresAt: dbModel.ExpiresAt,
		Attempts:  dbModel.Attempts,
		Consumed:  dbModel.Consumed,
		CreatedAt: dbModel.CreatedAt,
	}, nil
}

func (r *ResetCodeRepository) ConsumeAllForEmail(ctx context.Context, email string) error {
	err := r.db.DB.WithContext(ctx).Model(&models.ResetCodeModel{}).
		Where("email = ? AND consumed = false", email).
		Update("consumed", true).Error
	if err != nil {
		return fmt.Errorf("failed to consume reset codes: %w", err)
	}

	return nil
}

func (r *ResetCodeRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	// Single-statement increment so concurrent mismatches never under-count.
	result := r.db.DB.WithContext(ctx).Model(&models.ResetCodeModel{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1"))

	if result.Error != nil {
		return fmt.Errorf("failed to increment attempts: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrResetCodeNotFound
	}

	return nil
}

func (r *ResetCodeRepository) MarkConsumed(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&models.ResetCodeModel{}).
		Where("id = ?", id).
		Update("consumed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark reset code consumed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrResetCodeNotFound
	}

	return nil
}
