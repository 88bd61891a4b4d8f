package passwordreset

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

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

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
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

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) {
	var out []*domainUser.User
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) GetByRole(_ context.Context, role string) ([]*domainUser.User, error) {
	var out []*domainUser.User
	for _, u := range r.users {
		if u.Role == role {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePayroll(_ context.Context, u *domainUser.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domainUser.ErrUserNotFound
}

type fakeResetRepo struct {
	codes []*domainUser.ResetCode
	seq   int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{}
}

func (r *fakeResetRepo) Create(_ context.Context, code *domainUser.ResetCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	r.seq++
	code.CreatedAt = time.Unix(int64(r.seq), 0)
	r.codes = append(r.codes, code)
	return nil
}

func (r *fakeResetRepo) GetLatestActive(_ context.Context, email string) (*domainUser.ResetCode, error) {
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

func (r *fakeResetRepo) ConsumeAllForEmail(_ context.Context, email string) error {
	for _, c := range r.codes {
		if c.Email == email && !c.Consumed {
			c.Consumed = true
		}
	}
	return nil
}

func (r *fakeResetRepo) IncrementAttempts(_ context.Context, id uuid.UUID) error {
	for _, c := range r.codes {
		if c.ID == id {
			c.Attempts++
			return nil
		}
	}
	return domainUser.ErrResetCodeNotFound
}

func (r *fakeResetRepo) MarkConsumed(_ context.Context, id uuid.UUID) error {
	for _, c := range r.codes {
		if c.ID == id {
			c.Consumed = true
			return nil
		}
	}
	return domainUser.ErrResetCodeNotFound
}

func (r *fakeResetRepo) activeCode(email string) *domainUser.ResetCode {
	code, err := r.GetLatestActive(context.Background(), email)
	if err != nil {
		return nil
	}
	return code
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendResetCode(_ context.Context, to, _, code string, _ int) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, code)
	return nil
}

func (m *fakeMailer) SendApproval(_ context.Context, _, _, _ string) error { return m.err }
func (m *fakeMailer) SendDeclined(_ context.Context, _, _ string) error   { return m.err }

func testOTPConfig() config.OTPConfig {
	return config.OTPConfig{CodeLength: 6, TTLMinutes: 10, MaxAttempts: 5}
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeResetRepo, *fakeMailer) {
	t.Helper()

	userRepo := newFakeUserRepo()
	resetRepo := newFakeResetRepo()
	mailer := &fakeMailer{}

	hash, err := utils.HashPassword("OldPassword1")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &domainUser.User{
		Email:        "cook@foodnest.io",
		Name:         "Casey Cook",
		Role:         domainUser.RoleCook,
		PasswordHash: hash,
	}))

	svc := NewService(userRepo, resetRepo, mailer, testOTPConfig())
	return svc, userRepo, resetRepo, mailer
}

func TestRequestCodeIssuesZeroPaddedCode(t *testing.T) {
	svc, _, resetRepo, mailer := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))

	code := resetRepo.activeCode("cook@foodnest.io")
	require.NotNil(t, code)
	assert.Len(t, code.Code, 6)
	for _, r := range code.Code {
		assert.True(t, r >= '0' && r <= '9')
	}
	assert.Equal(t, 0, code.Attempts)
	assert.False(t, code.Consumed)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, code.Code, mailer.sent[0])
}

func TestRequestCodeNormalizesEmail(t *testing.T) {
	svc, _, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "  Cook@FoodNest.IO "}))

	assert.NotNil(t, resetRepo.activeCode("cook@foodnest.io"))
}

func TestVerifyAndResetAcceptPaddedEmail(t *testing.T) {
	svc, userRepo, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	code := resetRepo.activeCode("cook@foodnest.io")
	require.NotNil(t, code)

	require.NoError(t, svc.VerifyCode(ctx, &VerifyCodeRequest{
		Email: "  Cook@FoodNest.IO ",
		Code:  code.Code,
	}))

	require.NoError(t, svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "  Cook@FoodNest.IO ",
		Code:        code.Code,
		NewPassword: "NewPassword1",
	}))

	account, err := userRepo.GetByEmail(ctx, "cook@foodnest.io")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(account.PasswordHash, "NewPassword1"))
}

func TestRequestCodeUnknownEmailIndistinguishable(t *testing.T) {
	svc, _, resetRepo, mailer := newTestService(t)
	ctx := context.Background()

	err := svc.RequestCode(ctx, &RequestCodeRequest{Email: "nobody@foodnest.io"})

	// Same success as for a real account, but nothing is delivered.
	require.NoError(t, err)
	assert.NotNil(t, resetRepo.activeCode("nobody@foodnest.io"))
	assert.Empty(t, mailer.sent)
}

func TestRequestCodeInvalidatesPriorCodes(t *testing.T) {
	svc, _, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	first := resetRepo.activeCode("cook@foodnest.io").Code

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))

	active := 0
	for _, c := range resetRepo.codes {
		if !c.Consumed {
			active++
		}
	}
	assert.Equal(t, 1, active)

	// The superseded code no longer verifies even if it happens to differ.
	latest := resetRepo.activeCode("cook@foodnest.io")
	if first != latest.Code {
		err := svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: first})
		assert.ErrorIs(t, err, appErrors.ErrCodeMismatch)
	}
	require.NoError(t, svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: latest.Code}))
}

func TestRequestCodeSwallowsMailFailure(t *testing.T) {
	svc, _, resetRepo, mailer := newTestService(t)
	mailer.err = errors.New("smtp down")
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	assert.NotNil(t, resetRepo.activeCode("cook@foodnest.io"))
}

func TestVerifyCodeDoesNotConsume(t *testing.T) {
	svc, _, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	code := resetRepo.activeCode("cook@foodnest.io").Code

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: code}))
	}

	stored := resetRepo.activeCode("cook@foodnest.io")
	require.NotNil(t, stored)
	assert.Equal(t, 0, stored.Attempts)
}

func TestVerifyCodeNoActiveCode(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.VerifyCode(context.Background(), &VerifyCodeRequest{Email: "cook@foodnest.io", Code: "123456"})
	assert.ErrorIs(t, err, appErrors.ErrNoActiveCode)
}

func TestVerifyCodeMismatchChargesAttempts(t *testing.T) {
	svc, _, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	code := resetRepo.activeCode("cook@foodnest.io")
	wrong := "000000"
	if code.Code == wrong {
		wrong = "000001"
	}

	for i := 1; i <= 5; i++ {
		err := svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: wrong})
		assert.ErrorIs(t, err, appErrors.ErrCodeMismatch)
		assert.Equal(t, i, resetRepo.activeCode("cook@foodnest.io").Attempts)
	}

	// Budget exhausted: even the correct code is refused and attempts stay put.
	err := svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: code.Code})
	assert.ErrorIs(t, err, appErrors.ErrTooManyAttempts)
	assert.Equal(t, 5, resetRepo.activeCode("cook@foodnest.io").Attempts)

	err = svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "cook@foodnest.io",
		Code:        code.Code,
		NewPassword: "NewPassword1",
	})
	assert.ErrorIs(t, err, appErrors.ErrTooManyAttempts)
}

func TestVerifyCodeLazyExpiry(t *testing.T) {
	svc, _, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	code := resetRepo.activeCode("cook@foodnest.io").Code

	svc.now = func() time.Time { return base.Add(11 * time.Minute) }

	err := svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: code})
	assert.ErrorIs(t, err, appErrors.ErrCodeExpired)

	// The expiry check consumed the record.
	assert.Nil(t, resetRepo.activeCode("cook@foodnest.io"))
	err = svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: code})
	assert.ErrorIs(t, err, appErrors.ErrNoActiveCode)
}

func TestCompleteResetHappyPath(t *testing.T) {
	svc, userRepo, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	code := resetRepo.activeCode("cook@foodnest.io").Code

	require.NoError(t, svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "cook@foodnest.io",
		Code:        code,
		NewPassword: "NewPassword1",
	}))

	account, err := userRepo.GetByEmail(ctx, "cook@foodnest.io")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(account.PasswordHash, "NewPassword1"))
	assert.False(t, utils.CheckPassword(account.PasswordHash, "OldPassword1"))

	// The code is spent; a second completion finds nothing.
	err = svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "cook@foodnest.io",
		Code:        code,
		NewPassword: "OtherPassword1",
	})
	assert.ErrorIs(t, err, appErrors.ErrNoActiveCode)
}

func TestCompleteResetUnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "nobody@foodnest.io"}))

	err := svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "nobody@foodnest.io",
		Code:        "123456",
		NewPassword: "NewPassword1",
	})
	assert.ErrorIs(t, err, appErrors.ErrUnknownAccount)
}

func TestCompleteResetRejectsWeakPassword(t *testing.T) {
	svc, _, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	code := resetRepo.activeCode("cook@foodnest.io").Code

	err := svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "cook@foodnest.io",
		Code:        code,
		NewPassword: "alllowercase1",
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WEAK_PASSWORD", appErr.Code)

	// The code survives a rejected password and still works.
	require.NoError(t, svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "cook@foodnest.io",
		Code:        code,
		NewPassword: "StrongPassword1",
	}))
}

func TestFullResetScenario(t *testing.T) {
	svc, userRepo, resetRepo, _ := newTestService(t)
	ctx := context.Background()

	// Request, fail once with a typo, verify, then complete.
	require.NoError(t, svc.RequestCode(ctx, &RequestCodeRequest{Email: "cook@foodnest.io"}))
	code := resetRepo.activeCode("cook@foodnest.io")

	wrong := "999999"
	if code.Code == wrong {
		wrong = "999998"
	}
	err := svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: wrong})
	assert.ErrorIs(t, err, appErrors.ErrCodeMismatch)

	require.NoError(t, svc.VerifyCode(ctx, &VerifyCodeRequest{Email: "cook@foodnest.io", Code: code.Code}))
	require.NoError(t, svc.CompleteReset(ctx, &CompleteResetRequest{
		Email:       "cook@foodnest.io",
		Code:        code.Code,
		NewPassword: "BrandNewPass1",
	}))

	account, err := userRepo.GetByEmail(ctx, "cook@foodnest.io")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(account.PasswordHash, "BrandNewPass1"))
	assert.Nil(t, resetRepo.activeCode("cook@foodnest.io"))
}

func TestGenerateCodeUniformWidth(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}
