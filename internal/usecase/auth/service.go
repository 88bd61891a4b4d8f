package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodnest/internal/config"
	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// Service implements login, self-service registration requests and identity
// resolution.
type Service struct {
	userRepo    domainUser.Repository
	requestRepo domainUser.RegistrationRequestRepository
	config      *config.Config
}

// NewService creates a new auth service
func NewService(
	userRepo domainUser.Repository,
	requestRepo domainUser.RegistrationRequestRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		config:      cfg,
	}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	// Trim and lowercase before validation so padded input is accepted.
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if account.Disabled {
		logger.Warn("Login attempt for disabled account",
			zap.String("user_id", account.ID.String()),
			zap.String("event", "login_failed_disabled_account"),
		)
		return nil, appErrors.ErrUserDisabled
	}

	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", account.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(
		account.ID,
		account.Email,
		account.Role,
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in",
		zap.String("user_id", account.ID.String()),
		zap.String("role", account.Role),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		Token: token,
		User:  ToUserSummary(account),
	}, nil
}

// SubmitRegistration files a pending sign-up for superadmin review. The
// password is hashed now so plaintext never reaches the store.
func (s *Service) SubmitRegistration(ctx context.Context, req *RegisterRequest) (uuid.UUID, error) {
	email := utils.SanitizeEmail(req.Email)
	req.Email = email

	if err := utils.ValidateStruct(req); err != nil {
		return uuid.Nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return uuid.Nil, appErrors.ErrUserAlreadyExists
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return uuid.Nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if _, err := s.requestRepo.GetByEmail(ctx, email); err == nil {
		return uuid.Nil, domainUser.ErrRequestAlreadyExists
	} else if !errors.Is(err, domainUser.ErrRequestNotFound) {
		return uuid.Nil, fmt.Errorf("failed to check existing request: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	request := &domainUser.RegistrationRequest{
		Email:        email,
		Name:         utils.SanitizeString(req.Name),
		Role:         req.Role,
		PasswordHash: passwordHash,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return uuid.Nil, err
	}

	logger.Info("Registration request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("email", email),
		zap.String("role", req.Role),
		zap.String("event", "registration_request_submitted"),
	)

	return request.ID, nil
}

// Me resolves the authenticated user's current summary from the store.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*UserSummary, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserSummary(account), nil
}
