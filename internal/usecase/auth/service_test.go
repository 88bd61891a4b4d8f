package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodnest/internal/config"
	domainUser "foodnest/internal/domain/user"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

type fakeUserRepo struct {
	users map[string]*domainUser.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	if u, ok := r.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(context.Context) ([]*domainUser.User, error)            { return nil, nil }
func (r *fakeUserRepo) GetByRole(context.Context, string) ([]*domainUser.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	r.users[u.Email] = u
	return nil
}
func (r *fakeUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }
func (r *fakeUserRepo) UpdatePayroll(context.Context, *domainUser.User) error   { return nil }
func (r *fakeUserRepo) Delete(context.Context, uuid.UUID) error                 { return nil }

type fakeRequestRepo struct {
	requests map[string]*domainUser.RegistrationRequest
}

func (r *fakeRequestRepo) Create(_ context.Context, req *domainUser.RegistrationRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.requests[req.Email] = req
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.RegistrationRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, domainUser.ErrRequestNotFound
}

func (r *fakeRequestRepo) GetByEmail(_ context.Context, email string) (*domainUser.RegistrationRequest, error) {
	if req, ok := r.requests[email]; ok {
		return req, nil
	}
	return nil, domainUser.ErrRequestNotFound
}

func (r *fakeRequestRepo) GetAll(context.Context) ([]*domainUser.RegistrationRequest, error) {
	return nil, nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	for email, req := range r.requests {
		if req.ID == id {
			delete(r.requests, email)
			return nil
		}
	}
	return domainUser.ErrRequestNotFound
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeRequestRepo) {
	t.Helper()

	userRepo := &fakeUserRepo{users: make(map[string]*domainUser.User)}
	requestRepo := &fakeRequestRepo{requests: make(map[string]*domainUser.RegistrationRequest)}

	hash, err := utils.HashPassword("RiderPass1")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &domainUser.User{
		Email:        "rider@foodnest.io",
		Name:         "Robin Rider",
		Role:         domainUser.RoleRider,
		PasswordHash: hash,
	}))

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 168},
	}

	return NewService(userRepo, requestRepo, cfg), userRepo, requestRepo
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "rider@foodnest.io",
		Password: "RiderPass1",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "rider@foodnest.io", resp.User.Email)
	assert.Equal(t, domainUser.RoleRider, resp.User.Role)

	claims, err := utils.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	// 7-day token
	assert.InDelta(t, 168*3600, claims.ExpiresAt.Unix()-claims.IssuedAt.Unix(), 5)
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "  Rider@FoodNest.IO ",
		Password: "RiderPass1",
	})
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "rider@foodnest.io",
		Password: "WrongPass1",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@foodnest.io",
		Password: "RiderPass1",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	userRepo.users["rider@foodnest.io"].Disabled = true

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "rider@foodnest.io",
		Password: "RiderPass1",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserDisabled)
}

func TestSubmitRegistration(t *testing.T) {
	svc, _, requestRepo := newTestService(t)

	id, err := svc.SubmitRegistration(context.Background(), &RegisterRequest{
		Email:    "newcook@foodnest.io",
		Name:     "Nico New",
		Role:     domainUser.RoleCook,
		Password: "CookPass1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	stored := requestRepo.requests["newcook@foodnest.io"]
	require.NotNil(t, stored)
	// Stored hashed, never plaintext.
	assert.NotEqual(t, "CookPass1", stored.PasswordHash)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "CookPass1"))
}

func TestSubmitRegistrationRejectsSuperadmin(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SubmitRegistration(context.Background(), &RegisterRequest{
		Email:    "boss@foodnest.io",
		Name:     "Bossy Boss",
		Role:     domainUser.RoleSuperadmin,
		Password: "BossPass1",
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSubmitRegistrationConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitRegistration(ctx, &RegisterRequest{
		Email:    "rider@foodnest.io",
		Name:     "Robin Rider",
		Role:     domainUser.RoleRider,
		Password: "RiderPass1",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)

	_, err = svc.SubmitRegistration(ctx, &RegisterRequest{
		Email:    "newcook@foodnest.io",
		Name:     "Nico New",
		Role:     domainUser.RoleCook,
		Password: "CookPass1",
	})
	require.NoError(t, err)

	_, err = svc.SubmitRegistration(ctx, &RegisterRequest{
		Email:    "newcook@foodnest.io",
		Name:     "Nico New",
		Role:     domainUser.RoleCook,
		Password: "CookPass1",
	})
	// A pending request for the same email is a conflict, distinct from an
	// already-provisioned account.
	require.Error(t, err)
	assert.ErrorIs(t, err, domainUser.ErrRequestAlreadyExists)
	assert.False(t, errors.Is(err, appErrors.ErrUserAlreadyExists))
}

func TestMe(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	account := userRepo.users["rider@foodnest.io"]
	summary, err := svc.Me(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, summary.ID)
	assert.Equal(t, "Robin Rider", summary.Name)
}
