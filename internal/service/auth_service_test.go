package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "portal-api-test"}
}

func seedOperator(t *testing.T, fs *fakeStore, id, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	fs.seed(store.CollectionUsers, id, map[string]interface{}{
		"email":         email,
		"password_hash": string(hash),
		"full_name":     "Admin User",
		"role":          string(models.RoleAdmin),
		"active":        active,
	})
}

func TestLogin(t *testing.T) {
	fs := newFakeStore()
	audit := &fakeAudit{}
	seedOperator(t, fs, "u1", "admin@example.com", "correct-horse", true)
	svc := NewAuthService(fs, audit, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.Equal(t, []string{models.AuditActionLogin}, audit.actions())

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "portal-api-test", claims.Issuer)
}

func TestLoginWrongPassword(t *testing.T) {
	fs := newFakeStore()
	seedOperator(t, fs, "u1", "admin@example.com", "correct-horse", true)
	svc := NewAuthService(fs, nil, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidCredentials.Code))
}

func TestLoginUnknownEmail(t *testing.T) {
	fs := newFakeStore()
	svc := NewAuthService(fs, nil, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidCredentials.Code))
}

func TestLoginInactiveAccount(t *testing.T) {
	fs := newFakeStore()
	seedOperator(t, fs, "u1", "admin@example.com", "correct-horse", false)
	svc := NewAuthService(fs, nil, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInactiveAccount.Code))
}

func TestLoginInvalidPayload(t *testing.T) {
	fs := newFakeStore()
	svc := NewAuthService(fs, nil, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	fs := newFakeStore()
	seedOperator(t, fs, "u1", "admin@example.com", "correct-horse", true)
	svc := NewAuthService(fs, nil, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	other := NewAuthService(fs, nil, nil, nil, AuthConfig{Secret: "different-secret", Expiration: time.Hour})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrUnauthorized.Code))

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	fs := newFakeStore()
	seedOperator(t, fs, "u1", "admin@example.com", "correct-horse", true)
	cfg := testAuthConfig()
	cfg.Expiration = -time.Minute
	svc := NewAuthService(fs, nil, nil, nil, cfg)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrUnauthorized.Code))
}
