package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
	"foodnest/internal/notifier"
	"foodnest/pkg/crypto"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// Service implements superadmin user administration: account CRUD, the
// registration-request review workflow and the payroll subresource.
type Service struct {
	userRepo    domainUser.Repository
	requestRepo domainUser.RegistrationRequestRepository
	mailer      notifier.Mailer
	cipher      *crypto.Cipher
}

// NewService creates a new user administration service. cipher may be nil
// when no encryption key is configured; payroll writes carrying bank details
// then fail instead of storing plaintext.
func NewService(
	userRepo domainUser.Repository,
	requestRepo domainUser.RegistrationRequestRepository,
	mailer notifier.Mailer,
	cipher *crypto.Cipher,
) *Service {
	return &Service{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		mailer:      mailer,
		cipher:      cipher,
	}
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	email := req.Email
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, appErrors.ErrUserAlreadyExists
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domainUser.User{
		Email:        email,
		Name:         utils.SanitizeString(req.Name),
		Role:         req.Role,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("User created",
		zap.String("user_id", account.ID.String()),
		zap.String("role", account.Role),
		zap.String("event", "user_created"),
	)

	return ToUserResponse(account), nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	account, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(account), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	accounts, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, ToUserResponse(account))
	}
	return responses, nil
}

// ListByRole returns the trimmed picker listing for one role, or every user
// when role is empty.
func (s *Service) ListByRole(ctx context.Context, role string) ([]*UserPickerResponse, error) {
	if role != "" && !domainUser.ValidRole(role) {
		return nil, appErrors.ErrInvalidUserRole
	}

	var (
		accounts []*domainUser.User
		err      error
	)
	if role == "" {
		accounts, err = s.userRepo.GetAll(ctx)
	} else {
		accounts, err = s.userRepo.GetByRole(ctx, role)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*UserPickerResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, ToUserPickerResponse(account))
	}
	return responses, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if req.Email != nil {
		sanitized := utils.SanitizeEmail(*req.Email)
		req.Email = &sanitized
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := *req.Email
		if email != account.Email {
			if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
				return nil, appErrors.ErrUserAlreadyExists
			} else if !errors.Is(err, domainUser.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to check existing user: %w", err)
			}
			account.Email = email
		}
	}
	if req.Name != nil {
		account.Name = utils.SanitizeString(*req.Name)
	}
	if req.Role != nil {
		account.Role = *req.Role
	}
	if req.Disabled != nil {
		account.Disabled = *req.Disabled
	}

	if err := s.userRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("User updated",
		zap.String("user_id", account.ID.String()),
		zap.String("event", "user_updated"),
	)

	return ToUserResponse(account), nil
}

// DeleteUser removes an account. Superadmins are never deletable.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	account, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if account.Role == domainUser.RoleSuperadmin {
		return appErrors.NewAppError("FORBIDDEN", "Cannot delete a superadmin account", nil)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("event", "user_deleted"),
	)

	return nil
}

// GetPayroll returns the payroll fields with bank details decrypted and the
// account number masked.
func (s *Service) GetPayroll(ctx context.Context, id uuid.UUID) (*PayrollResponse, error) {
	account, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &PayrollResponse{
		UserID:         account.ID,
		Currency:       account.Currency,
		BaseSalary:     account.BaseSalary,
		PayFrequency:   account.PayFrequency,
		EmploymentType: account.EmploymentType,
		VAT:            account.VAT,
		EffectiveFrom:  account.EffectiveFrom,
		OTEligible:     account.OTEligible,
		OTRate:         account.OTRate,
		Allowances:     account.Allowances,
		Deductions:     account.Deductions,
		TaxID:          account.TaxID,
		Notes:          account.Notes,
	}

	if account.BankEnc != nil && *account.BankEnc != "" {
		bank, err := s.decryptBank(*account.BankEnc)
		if err != nil {
			logger.Error("Failed to decrypt bank details",
				zap.String("user_id", account.ID.String()),
				zap.Error(err),
			)
			return nil, appErrors.NewAppError("DECRYPT_ERROR", "Failed to read bank details", err)
		}
		bank.AccountNumber = crypto.MaskAccountNumber(bank.AccountNumber)
		resp.Bank = bank
	}

	return resp, nil
}

// UpdatePayroll applies a partial payroll update. Bank details, when present,
// are encrypted before they touch the store.
func (s *Service) UpdatePayroll(ctx context.Context, id uuid.UUID, req *UpdatePayrollRequest) (*PayrollResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	account, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Currency != nil {
		account.Currency = req.Currency
	}
	if req.BaseSalary != nil {
		account.BaseSalary = req.BaseSalary
	}
	if req.PayFrequency != nil {
		account.PayFrequency = req.PayFrequency
	}
	if req.EmploymentType != nil {
		account.EmploymentType = req.EmploymentType
	}
	if req.VAT != nil {
		account.VAT = req.VAT
	}
	if req.EffectiveFrom != nil {
		account.EffectiveFrom = req.EffectiveFrom
	}
	if req.OTEligible != nil {
		account.OTEligible = req.OTEligible
	}
	if req.OTRate != nil {
		account.OTRate = req.OTRate
	}
	if req.Allowances != nil {
		account.Allowances = req.Allowances
	}
	if req.Deductions != nil {
		account.Deductions = req.Deductions
	}
	if req.TaxID != nil {
		taxID := utils.SanitizeString(*req.TaxID)
		account.TaxID = &taxID
	}
	if req.Notes != nil {
		notes := utils.SanitizeText(*req.Notes)
		account.Notes = &notes
	}

	if req.Bank != nil {
		if s.cipher == nil {
			return nil, appErrors.NewAppError("ENCRYPTION_UNAVAILABLE",
				"Bank details cannot be stored without an encryption key", nil)
		}
		plaintext, err := json.Marshal(req.Bank)
		if err != nil {
			return nil, fmt.Errorf("failed to encode bank details: %w", err)
		}
		blob, err := s.cipher.Encrypt(plaintext)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt bank details: %w", err)
		}
		account.BankEnc = &blob
	}

	if err := s.userRepo.UpdatePayroll(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Payroll updated",
		zap.String("user_id", account.ID.String()),
		zap.String("event", "payroll_updated"),
	)

	return s.GetPayroll(ctx, id)
}

func (s *Service) decryptBank(blob string) (*BankDetails, error) {
	if s.cipher == nil {
		return nil, crypto.ErrKeyMissing
	}
	plaintext, err := s.cipher.Decrypt(blob)
	if err != nil {
		return nil, err
	}
	var bank BankDetails
	if err := json.Unmarshal(plaintext, &bank); err != nil {
		return nil, fmt.Errorf("failed to decode bank details: %w", err)
	}
	return &bank, nil
}

func (s *Service) ListRegistrationRequests(ctx context.Context) ([]*RegistrationRequestResponse, error) {
	requests, err := s.requestRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*RegistrationRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, ToRegistrationRequestResponse(request))
	}
	return responses, nil
}

// ApproveRegistration turns a pending request into a live account. The
// password hash stored at submission time is carried over verbatim, so the
// applicant logs in with the password they originally chose.
func (s *Service) ApproveRegistration(ctx context.Context, requestID uuid.UUID) (*UserResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, request.Email); err == nil {
		// The account appeared since submission; drop the stale request.
		if delErr := s.requestRepo.Delete(ctx, requestID); delErr != nil {
			logger.Error("Failed to delete stale registration request",
				zap.String("request_id", requestID.String()),
				zap.Error(delErr),
			)
		}
		return nil, appErrors.ErrUserAlreadyExists
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	account := &domainUser.User{
		Email:        request.Email,
		Name:         request.Name,
		Role:         request.Role,
		PasswordHash: request.PasswordHash,
	}
	if err := s.userRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Delete(ctx, requestID); err != nil {
		logger.Error("Failed to delete approved registration request",
			zap.String("request_id", requestID.String()),
			zap.Error(err),
		)
	}

	if err := s.mailer.SendApproval(ctx, account.Email, account.Name, account.Role); err != nil {
		logger.Error("Failed to send approval mail",
			zap.String("email", account.Email),
			zap.Error(err),
		)
	}

	logger.Info("Registration request approved",
		zap.String("request_id", requestID.String()),
		zap.String("user_id", account.ID.String()),
		zap.String("role", account.Role),
		zap.String("event", "registration_approved"),
	)

	return ToUserResponse(account), nil
}

// DeclineRegistration deletes a pending request and notifies the applicant.
func (s *Service) DeclineRegistration(ctx context.Context, requestID uuid.UUID) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.requestRepo.Delete(ctx, requestID); err != nil {
		return err
	}

	if err := s.mailer.SendDeclined(ctx, request.Email, request.Name); err != nil {
		logger.Error("Failed to send declined mail",
			zap.String("email", request.Email),
			zap.Error(err),
		)
	}

	logger.Info("Registration request declined",
		zap.String("request_id", requestID.String()),
		zap.String("event", "registration_declined"),
	)

	return nil
}
