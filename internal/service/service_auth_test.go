package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/mailer"
	"github.com/tournest/tournest/internal/store"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn          func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn     func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn        func(ctx context.Context, userID uuid.UUID) (models.User, error)
	updatePasswordFn      func(ctx context.Context, userID uuid.UUID, passwordHash string, passwordSetAt time.Time) error
	setResetRecordFn      func(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	clearResetRecordFn    func(ctx context.Context, userID uuid.UUID) error
	findUserByResetHashFn func(ctx context.Context, tokenHash string, now time.Time) (models.User, error)
	updateProfileFn       func(ctx context.Context, userID uuid.UUID, name, email string) (models.User, error)
	deactivateFn          func(ctx context.Context, userID uuid.UUID) error
	deleteUserFn          func(ctx context.Context, userID uuid.UUID) error
	listUsersFn           func(ctx context.Context, params url.Values) ([]models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, passwordSetAt time.Time) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHash, passwordSetAt)
	}
	return nil
}

func (m *mockUserRepository) SetResetRecord(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	if m.setResetRecordFn != nil {
		return m.setResetRecordFn(ctx, userID, tokenHash, expiresAt)
	}
	return nil
}

func (m *mockUserRepository) ClearResetRecord(ctx context.Context, userID uuid.UUID) error {
	if m.clearResetRecordFn != nil {
		return m.clearResetRecordFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) FindUserByResetHash(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	if m.findUserByResetHashFn != nil {
		return m.findUserByResetHashFn(ctx, tokenHash, now)
	}
	return models.User{}, store.ErrResetRecordNotFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, name, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context, params url.Values) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, params)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: mailer.Mailer
// ─────────────────────────────────────────────

type mockMailer struct {
	sendFn func(ctx context.Context, msg mailer.Message) error
	sent   []mailer.Message
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestAuthService(repo *mockUserRepository, mail *mockMailer) *authService {
	return &authService{
		userRepository: repo,
		mailer:         mail,
		bcryptCost:     bcrypt.MinCost,
		resetTokenTTL:  10 * time.Minute,
		publicBaseURL:  "https://tournest.example.com",
		logger:         logger.Nop(),
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

// ─────────────────────────────────────────────
// Signup
// ─────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newTestAuthService(repo, &mockMailer{})

	created, err := svc.Signup(context.Background(), "  John   Doe ", "  John@Example.COM ", "password123", "password123")
	require.NoError(t, err)

	assert.Equal(t, "John Doe", created.Name)
	assert.Equal(t, "john@example.com", created.Email)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotEqual(t, uuid.Nil, created.UserID)

	// the plaintext never reaches storage
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.True(t, utils.CheckPassword("password123", created.PasswordHash))

	// tokens issued from now on must verify as fresh
	assert.True(t, created.PasswordSetAt.Before(time.Now()))
}

func TestSignup_ValidationFailuresCreateNothing(t *testing.T) {
	tests := []struct {
		name            string
		userName        string
		email           string
		password        string
		passwordConfirm string
	}{
		{name: "missing name", userName: "", email: "a@b.com", password: "password123", passwordConfirm: "password123"},
		{name: "missing email", userName: "John", email: "", password: "password123", passwordConfirm: "password123"},
		{name: "malformed email", userName: "John", email: "not-an-email", password: "password123", passwordConfirm: "password123"},
		{name: "short password", userName: "John", email: "a@b.com", password: "short", passwordConfirm: "short"},
		{name: "confirmation mismatch", userName: "John", email: "a@b.com", password: "password123", passwordConfirm: "password124"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockUserRepository{
				createUserFn: func(ctx context.Context, user models.User) (models.User, error) {
					created = true
					return user, nil
				},
			}
			svc := newTestAuthService(repo, &mockMailer{})

			_, err := svc.Signup(context.Background(), tt.userName, tt.email, tt.password, tt.passwordConfirm)
			require.ErrorIs(t, err, ErrValidation)
			assert.False(t, created, "no account may be created on validation failure")
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createUserFn: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	_, err := svc.Signup(context.Background(), "John", "taken@example.com", "password123", "password123")
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	stored := models.User{
		UserID:       uuid.New(),
		Email:        "john@example.com",
		PasswordHash: hashFor(t, "password123"),
		Active:       true,
	}
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			assert.Equal(t, "john@example.com", email)
			return stored, nil
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	user, err := svc.Login(context.Background(), "John@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, user.UserID)
}

// Unknown email, wrong password, and a deactivated account must be
// indistinguishable to the caller.
func TestLogin_FailuresCollapse(t *testing.T) {
	active := models.User{Email: "john@example.com", PasswordHash: hashFor(t, "password123"), Active: true}
	inactive := active
	inactive.Active = false

	tests := []struct {
		name     string
		stored   models.User
		found    bool
		password string
	}{
		{name: "unknown email", found: false, password: "password123"},
		{name: "wrong password", stored: active, found: true, password: "wrong-password"},
		{name: "inactive account", stored: inactive, found: true, password: "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{
				findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
					if !tt.found {
						return models.User{}, store.ErrUserNotFound
					}
					return tt.stored, nil
				},
			}
			svc := newTestAuthService(repo, &mockMailer{})

			_, err := svc.Login(context.Background(), "john@example.com", tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_StoreUnavailableIsNotCredentialFailure(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{}, store.ErrUnavailable
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	_, err := svc.Login(context.Background(), "john@example.com", "password123")
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

// ─────────────────────────────────────────────
// ForgotPassword
// ─────────────────────────────────────────────

func TestForgotPassword_StoresDigestAndMailsPlaintext(t *testing.T) {
	user := models.User{UserID: uuid.New(), Email: "john@example.com", Active: true}

	var storedDigest string
	var storedExpiry time.Time
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return user, nil
		},
		setResetRecordFn: func(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
			storedDigest = tokenHash
			storedExpiry = expiresAt
			return nil
		},
	}
	mail := &mockMailer{}
	svc := newTestAuthService(repo, mail)

	require.NoError(t, svc.ForgotPassword(context.Background(), "john@example.com"))
	require.Len(t, mail.sent, 1)

	msg := mail.sent[0]
	assert.Equal(t, user.Email, msg.To)
	assert.Contains(t, msg.Body, "https://tournest.example.com/api/v1/users/reset-password/")

	// the body carries the plaintext, the store only its digest
	assert.NotContains(t, msg.Body, storedDigest)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), storedExpiry, 5*time.Second)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockMailer{})

	err := svc.ForgotPassword(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestForgotPassword_MailFailureRollsBackRecord(t *testing.T) {
	user := models.User{UserID: uuid.New(), Email: "john@example.com", Active: true}

	cleared := false
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return user, nil
		},
		clearResetRecordFn: func(ctx context.Context, userID uuid.UUID) error {
			cleared = true
			assert.Equal(t, user.UserID, userID)
			return nil
		},
	}
	mail := &mockMailer{
		sendFn: func(ctx context.Context, msg mailer.Message) error {
			return errors.New("smtp relay down")
		},
	}
	svc := newTestAuthService(repo, mail)

	err := svc.ForgotPassword(context.Background(), "john@example.com")
	assert.ErrorIs(t, err, ErrMailDelivery)
	assert.True(t, cleared, "pending reset record must be rolled back on delivery failure")
}

// ─────────────────────────────────────────────
// ResetPassword
// ─────────────────────────────────────────────

func TestResetPassword_Success(t *testing.T) {
	plaintext, digest, err := utils.NewResetToken()
	require.NoError(t, err)

	user := models.User{
		UserID:        uuid.New(),
		Email:         "john@example.com",
		PasswordHash:  hashFor(t, "old-password"),
		PasswordSetAt: time.Now().Add(-time.Hour),
		Active:        true,
	}

	var persistedHash string
	var persistedSetAt time.Time
	repo := &mockUserRepository{
		findUserByResetHashFn: func(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
			assert.Equal(t, digest, tokenHash)
			return user, nil
		},
		updatePasswordFn: func(ctx context.Context, userID uuid.UUID, passwordHash string, passwordSetAt time.Time) error {
			persistedHash = passwordHash
			persistedSetAt = passwordSetAt
			return nil
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	updated, err := svc.ResetPassword(context.Background(), plaintext, "new-password", "new-password")
	require.NoError(t, err)

	assert.True(t, utils.CheckPassword("new-password", persistedHash))
	assert.True(t, persistedSetAt.After(user.PasswordSetAt), "password-set timestamp must move strictly forward")
	assert.Equal(t, persistedSetAt, updated.PasswordSetAt)
	assert.Empty(t, updated.ResetTokenHash)
}

// A token that never existed and one past its expiry yield the same error.
func TestResetPassword_InvalidTokenIndistinguishable(t *testing.T) {
	repo := &mockUserRepository{
		findUserByResetHashFn: func(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
			return models.User{}, store.ErrResetRecordNotFound
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	_, err := svc.ResetPassword(context.Background(), "whatever", "new-password", "new-password")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword_StoreUnavailableIsNotInvalidToken(t *testing.T) {
	repo := &mockUserRepository{
		findUserByResetHashFn: func(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
			return models.User{}, store.ErrUnavailable
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	_, err := svc.ResetPassword(context.Background(), "whatever", "new-password", "new-password")
	assert.NotErrorIs(t, err, ErrResetTokenInvalid)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestResetPassword_ValidationBeforeLookup(t *testing.T) {
	looked := false
	repo := &mockUserRepository{
		findUserByResetHashFn: func(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
			looked = true
			return models.User{}, store.ErrResetRecordNotFound
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	_, err := svc.ResetPassword(context.Background(), "whatever", "short", "short")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, looked, "invalid passwords must not consume the lookup")
}

// ─────────────────────────────────────────────
// ChangePassword
// ─────────────────────────────────────────────

func TestChangePassword_Success(t *testing.T) {
	user := models.User{
		UserID:        uuid.New(),
		Email:         "john@example.com",
		PasswordHash:  hashFor(t, "old-password"),
		PasswordSetAt: time.Now().Add(-time.Hour),
		Active:        true,
	}

	var persistedSetAt time.Time
	repo := &mockUserRepository{
		updatePasswordFn: func(ctx context.Context, userID uuid.UUID, passwordHash string, passwordSetAt time.Time) error {
			persistedSetAt = passwordSetAt
			return nil
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	updated, err := svc.ChangePassword(context.Background(), user, "old-password", "new-password", "new-password")
	require.NoError(t, err)

	assert.True(t, utils.CheckPassword("new-password", updated.PasswordHash))
	assert.True(t, persistedSetAt.After(user.PasswordSetAt))
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	user := models.User{
		UserID:       uuid.New(),
		PasswordHash: hashFor(t, "old-password"),
		Active:       true,
	}

	changed := false
	repo := &mockUserRepository{
		updatePasswordFn: func(ctx context.Context, userID uuid.UUID, passwordHash string, passwordSetAt time.Time) error {
			changed = true
			return nil
		},
	}
	svc := newTestAuthService(repo, &mockMailer{})

	_, err := svc.ChangePassword(context.Background(), user, "not-the-password", "new-password", "new-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.False(t, changed, "password must not change when the current one fails verification")
}

// ─────────────────────────────────────────────
// nextPasswordSetAt
// ─────────────────────────────────────────────

func TestNextPasswordSetAt(t *testing.T) {
	t.Run("rewinds one second from now", func(t *testing.T) {
		got := nextPasswordSetAt(time.Time{})
		assert.WithinDuration(t, time.Now().Add(-time.Second), got, 100*time.Millisecond)
	})

	t.Run("strictly after previous value", func(t *testing.T) {
		prev := time.Now().Add(time.Minute) // simulated clock skew
		got := nextPasswordSetAt(prev)
		assert.True(t, got.After(prev))
	})
}
