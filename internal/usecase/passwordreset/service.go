package passwordreset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"foodnest/internal/config"
	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
	"foodnest/internal/notifier"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// Service is the password-reset policy engine. It owns the lifecycle of
// reset codes: issuance invalidates every prior unconsumed code for the
// email, verification charges a shared attempts budget, and expiry is
// detected lazily at check time and flips the record to consumed.
type Service struct {
	userRepo  domainUser.Repository
	resetRepo domainUser.ResetCodeRepository
	mailer    notifier.Mailer
	cfg       config.OTPConfig

	// now is swapped in tests to exercise expiry.
	now func() time.Time
}

// NewService creates a new password reset service
func NewService(
	userRepo domainUser.Repository,
	resetRepo domainUser.ResetCodeRepository,
	mailer notifier.Mailer,
	cfg config.OTPConfig,
) *Service {
	return &Service{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mailer:    mailer,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RequestCode issues a fresh reset code for the email. The response is
// identical whether or not the email belongs to an account, so the endpoint
// cannot be used to enumerate users. Mail delivery is best-effort.
func (s *Service) RequestCode(ctx context.Context, req *RequestCodeRequest) error {
	// Normalization runs first so padded or mixed-case input never trips
	// the format validation it would pass once trimmed and lowercased.
	email, err := utils.ValidateAndSanitizeEmail(req.Email)
	if err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid email", err)
	}
	req.Email = email

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	// Invalidate before inserting so no point in time observes two active
	// codes for the same email.
	if err := s.resetRepo.ConsumeAllForEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to invalidate prior codes: %w", err)
	}

	code, err := generateCode(s.cfg.CodeLength)
	if err != nil {
		return err
	}

	resetCode := &domainUser.ResetCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(time.Duration(s.cfg.TTLMinutes) * time.Minute),
		Attempts:  0,
		Consumed:  false,
	}
	if err := s.resetRepo.Create(ctx, resetCode); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	logger.Info("Password reset code issued",
		zap.String("email", email),
		zap.Time("expires_at", resetCode.ExpiresAt),
		zap.String("event", "password_reset_code_issued"),
	)

	account, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			// Deliberately indistinguishable from the known-account path.
			logger.Info("Password reset requested for unknown email",
				zap.String("email", email),
				zap.String("event", "password_reset_unknown_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.mailer.SendResetCode(ctx, account.Email, account.Name, code, s.cfg.TTLMinutes); err != nil {
		// Delivery failure is absorbed here; the caller still gets success.
		logger.Error("Failed to deliver reset code",
			zap.String("email", email),
			zap.Error(err),
			zap.String("event", "password_reset_delivery_failed"),
		)
	}

	return nil
}

// VerifyCode is a non-destructive pre-check: a correct, unexpired code
// passes without being consumed, letting the client show the new-password
// step before the final commit.
func (s *Service) VerifyCode(ctx context.Context, req *VerifyCodeRequest) error {
	email, err := utils.ValidateAndSanitizeEmail(req.Email)
	if err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid email", err)
	}
	req.Email = email

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.checkActiveCode(ctx, email, req.Code); err != nil {
		return err
	}

	logger.Debug("Password reset code verified",
		zap.String("email", email),
		zap.String("event", "password_reset_code_verified"),
	)

	return nil
}

// CompleteReset re-runs the verification checks against the same attempts
// budget, then updates the password and consumes the code. The code is only
// consumed after the password write succeeded, so a failed update leaves it
// usable for a retry.
func (s *Service) CompleteReset(ctx context.Context, req *CompleteResetRequest) error {
	email, err := utils.ValidateAndSanitizeEmail(req.Email)
	if err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid email", err)
	}
	req.Email = email

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	account, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrUnknownAccount
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	resetCode, err := s.checkActiveCode(ctx, email, req.Code)
	if err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, account.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.resetRepo.MarkConsumed(ctx, resetCode.ID); err != nil {
		// Password is already updated; the stale code dies at TTL.
		logger.Error("Failed to consume reset code after password update",
			zap.String("email", email),
			zap.String("code_id", resetCode.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset completed",
		zap.String("user_id", account.ID.String()),
		zap.String("email", email),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// checkActiveCode applies the shared policy checks: active-code lookup,
// attempts throttle, exact match, lazy expiry. A mismatch charges the
// attempts budget; an observed expiry consumes the record.
func (s *Service) checkActiveCode(ctx context.Context, email, submitted string) (*domainUser.ResetCode, error) {
	resetCode, err := s.resetRepo.GetLatestActive(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrResetCodeNotFound) {
			return nil, appErrors.ErrNoActiveCode
		}
		return nil, fmt.Errorf("failed to look up reset code: %w", err)
	}

	if resetCode.Attempts >= s.cfg.MaxAttempts {
		logger.Warn("Password reset attempts exhausted",
			zap.String("email", email),
			zap.Int("attempts", resetCode.Attempts),
			zap.String("event", "password_reset_attempts_exhausted"),
		)
		return nil, appErrors.ErrTooManyAttempts
	}

	if submitted != resetCode.Code {
		if err := s.resetRepo.IncrementAttempts(ctx, resetCode.ID); err != nil {
			return nil, fmt.Errorf("failed to record failed attempt: %w", err)
		}
		logger.Warn("Password reset code mismatch",
			zap.String("email", email),
			zap.Int("attempts", resetCode.Attempts+1),
			zap.String("event", "password_reset_code_mismatch"),
		)
		return nil, appErrors.ErrCodeMismatch
	}

	if resetCode.IsExpired(s.now()) {
		if err := s.resetRepo.MarkConsumed(ctx, resetCode.ID); err != nil {
			return nil, fmt.Errorf("failed to consume expired code: %w", err)
		}
		logger.Info("Password reset code expired at check time",
			zap.String("email", email),
			zap.String("event", "password_reset_code_expired"),
		)
		return nil, appErrors.ErrCodeExpired
	}

	return resetCode, nil
}
