package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodnest/internal/domain/user"
	"foodnest/internal/infrastructure/database/postgres/models"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "email") {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = dbModel.ID
	u.CreatedAt = dbModel.CreatedAt
	u.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	var dbModels []models.UserModel
	err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users := make([]*user.User, len(dbModels))
	for i, dbModel := range dbModels {
		users[i] = toUserEntity(&dbModel)
	}

	return users, nil
}

func (r *UserRepository) GetByRole(ctx context.Context, role string) ([]*user.User, error) {
	var dbModels []models.UserModel
	err := r.db.DB.WithContext(ctx).Where("role = ?", role).Order("name").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users by role: %w", err)
	}

	users := make([]*user.User, len(dbModels))
	for i, dbModel := range dbModels {
		users[i] = toUserEntity(&dbModel)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":       u.Name,
			"email":      u.Email,
			"role":       u.Role,
			"disabled":   u.Disabled,
			"updated_at": u.UpdatedAt,
		})

	if result.Error != nil {
		errStr := strings.ToLower(result.Error.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "email") {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePayroll(ctx context.Context, u *user.User) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"currency":        u.Currency,
			"base_salary":     u.BaseSalary,
			"pay_frequency":   u.PayFrequency,
			"employment_type": u.EmploymentType,
			"vat":             u.VAT,
			"effective_from":  u.EffectiveFrom,
			"ot_eligible":     u.OTEligible,
			"ot_rate":         u.OTRate,
			"allowances":      u.Allowances,
			"deductions":      u.Deductions,
			"tax_id":          u.TaxID,
			"bank_enc":        u.BankEnc,
			"notes":           u.Notes,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update payroll: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		PasswordHash:   u.PasswordHash,
		Disabled:       u.Disabled,
		Currency:       u.Currency,
		BaseSalary:     u.BaseSalary,
		PayFrequency:   u.PayFrequency,
		EmploymentType: u.EmploymentType,
		VAT:            u.VAT,
		EffectiveFrom:  u.EffectiveFrom,
		OTEligible:     u.OTEligible,
		OTRate:         u.OTRate,
		Allowances:     u.Allowances,
		Deductions:     u.Deductions,
		TaxID:          u.TaxID,
		BankEnc:        u.BankEnc,
		Notes:          u.Notes,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:             m.ID,
		Email:          m.Email,
		Name:           m.Name,
		Role:           m.Role,
		PasswordHash:   m.PasswordHash,
		Disabled:       m.Disabled,
		Currency:       m.Currency,
		BaseSalary:     m.BaseSalary,
		PayFrequency:   m.PayFrequency,
		EmploymentType: m.EmploymentType,
		VAT:            m.VAT,
		EffectiveFrom:  m.EffectiveFrom,
		OTEligible:     m.OTEligible,
		OTRate:         m.OTRate,
		Allowances:     m.Allowances,
		Deductions:     m.Deductions,
		TaxID:          m.TaxID,
		BankEnc:        m.BankEnc,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
