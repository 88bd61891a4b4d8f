package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodnest/internal/config"
	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/usecase/passwordreset"
	"foodnest/pkg/utils"
)

type memUserRepo struct {
	users map[string]*domainUser.User
}

func (r *memUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	if u, ok := r.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memUserRepo) GetAll(context.Context) ([]*domainUser.User, error)            { return nil, nil }
func (r *memUserRepo) GetByRole(context.Context, string) ([]*domainUser.User, error) { return nil, nil }
func (r *memUserRepo) Update(context.Context, *domainUser.User) error                { return nil }
func (r *memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domainUser.ErrUserNotFound
}
func (r *memUserRepo) UpdatePayroll(context.Context, *domainUser.User) error { return nil }
func (r *memUserRepo) Delete(context.Context, uuid.UUID) error               { return nil }

type memResetRepo struct {
	codes []*domainUser.ResetCode
	seq   int
}

func (r *memResetRepo) Create(_ context.Context, code *domainUser.ResetCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	r.seq++
	code.CreatedAt = time.Unix(int64(r.seq), 0)
	r.codes = append(r.codes, code)
	return nil
}

func (r *memResetRepo) GetLatestActive(_ context.Context, email string) (*domainUser.ResetCode, error) {
	var matches []*domainUser.ResetCode
	for _, c := range r.codes {
		if c.Email == email && !c.Consumed {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, domainUser.ErrResetCodeNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	copied := *matches[0]
	return &copied, nil
}

func (r *memResetRepo) ConsumeAllForEmail(_ context.Context, email string) error {
	for _, c := range r.codes {
		if c.Email == email {
			c.Consumed = true
		}
	}
	return nil
}

func (r *memResetRepo) IncrementAttempts(_ context.Context, id uuid.UUID) error {
	for _, c := range r.codes {
		if c.ID == id {
			c.Attempts++
			return nil
		}
	}
	return domainUser.ErrResetCodeNotFound
}

func (r *memResetRepo) MarkConsumed(_ context.Context, id uuid.UUID) error {
	for _, c := range r.codes {
		if c.ID == id {
			c.Consumed = true
			return nil
		}
	}
	return domainUser.ErrResetCodeNotFound
}

type silentMailer struct{}

func (silentMailer) SendResetCode(context.Context, string, string, string, int) error { return nil }
func (silentMailer) SendApproval(context.Context, string, string, string) error       { return nil }
func (silentMailer) SendDeclined(context.Context, string, string) error               { return nil }

func newResetTestRouter(t *testing.T) (*gin.Engine, *memResetRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := &memUserRepo{users: make(map[string]*domainUser.User)}
	resetRepo := &memResetRepo{}

	hash, err := utils.HashPassword("OldPassword1")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &domainUser.User{
		Email:        "cook@foodnest.io",
		Name:         "Casey Cook",
		Role:         domainUser.RoleCook,
		PasswordHash: hash,
	}))

	service := passwordreset.NewService(userRepo, resetRepo, silentMailer{},
		config.OTPConfig{CodeLength: 6, TTLMinutes: 10, MaxAttempts: 5})

	router := gin.New()
	NewPasswordResetHandler(service).RegisterRoutes(router.Group("/api/v1"))
	return router, resetRepo
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestForgotPasswordIdenticalForUnknownEmail(t *testing.T) {
	router, _ := newResetTestRouter(t)

	known := postJSON(router, "/api/v1/auth/forgot-password",
		gin.H{"email": "cook@foodnest.io"})
	unknown := postJSON(router, "/api/v1/auth/forgot-password",
		gin.H{"email": "nobody@foodnest.io"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestVerifyResetCodeStatuses(t *testing.T) {
	router, resetRepo := newResetTestRouter(t)

	// No active code yet
	w := postJSON(router, "/api/v1/auth/verify-reset-code",
		gin.H{"email": "cook@foodnest.io", "code": "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), invalidCodeMessage)

	require.Equal(t, http.StatusOK,
		postJSON(router, "/api/v1/auth/forgot-password", gin.H{"email": "cook@foodnest.io"}).Code)
	code, err := resetRepo.GetLatestActive(context.Background(), "cook@foodnest.io")
	require.NoError(t, err)

	wrong := "000000"
	if code.Code == wrong {
		wrong = "000001"
	}

	// Mismatches share the same public message until the budget runs out.
	for i := 0; i < 5; i++ {
		w = postJSON(router, "/api/v1/auth/verify-reset-code",
			gin.H{"email": "cook@foodnest.io", "code": wrong})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), invalidCodeMessage)
	}

	w = postJSON(router, "/api/v1/auth/verify-reset-code",
		gin.H{"email": "cook@foodnest.io", "code": code.Code})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestResetPasswordFlow(t *testing.T) {
	router, resetRepo := newResetTestRouter(t)

	require.Equal(t, http.StatusOK,
		postJSON(router, "/api/v1/auth/forgot-password", gin.H{"email": "cook@foodnest.io"}).Code)
	code, err := resetRepo.GetLatestActive(context.Background(), "cook@foodnest.io")
	require.NoError(t, err)

	w := postJSON(router, "/api/v1/auth/verify-reset-code",
		gin.H{"email": "cook@foodnest.io", "code": code.Code})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/v1/auth/reset-password",
		gin.H{"email": "cook@foodnest.io", "code": code.Code, "new_password": "NewPassword1"})
	assert.Equal(t, http.StatusOK, w.Code)

	// The code is spent.
	w = postJSON(router, "/api/v1/auth/reset-password",
		gin.H{"email": "cook@foodnest.io", "code": code.Code, "new_password": "NewPassword2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), invalidCodeMessage)
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	router, _ := newResetTestRouter(t)

	require.Equal(t, http.StatusOK,
		postJSON(router, "/api/v1/auth/forgot-password", gin.H{"email": "nobody@foodnest.io"}).Code)

	w := postJSON(router, "/api/v1/auth/reset-password",
		gin.H{"email": "nobody@foodnest.io", "code": "123456", "new_password": "NewPassword1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
