package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/config"
)

func newTokenOnlyAuthService(ttl time.Duration) *AuthService {
	return NewAuthService(nil, &config.AuthConfig{
		SecretKey: "test-secret",
		TokenTTL:  ttl,
	}, zap.NewNop())
}

func TestIssueAndParseToken(t *testing.T) {
	svc := newTokenOnlyAuthService(30 * time.Minute)

	token, err := svc.IssueToken("user-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.IsAdmin)
}

func TestParseToken_WrongSecret(t *testing.T) {
	svc := newTokenOnlyAuthService(30 * time.Minute)
	other := NewAuthService(nil, &config.AuthConfig{
		SecretKey: "another-secret",
		TokenTTL:  30 * time.Minute,
	}, zap.NewNop())

	token, err := other.IssueToken("user-1", false)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	svc := newTokenOnlyAuthService(-time.Minute)

	token, err := svc.IssueToken("user-1", false)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	svc := newTokenOnlyAuthService(30 * time.Minute)

	_, err := svc.ParseToken("not-a-token")
	require.Error(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	db := getTestDB(t)
	svc := NewAuthService(db, &config.AuthConfig{
		SecretKey: "test-secret",
		TokenTTL:  30 * time.Minute,
	}, zap.NewNop())
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	email := fmt.Sprintf("auth-%s@example.com", suffix)
	cpf := suffix[:8] + "002"

	user, err := svc.Register(ctx, RegisterInput{
		Name:     "Auth Test User",
		CPF:      cpf,
		Email:    email,
		Password: "testpassword123",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = ?", user.ID) })

	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "testpassword123", user.HashedPassword)

	// Duplicate registrations are rejected.
	_, err = svc.Register(ctx, RegisterInput{Name: "Dup", CPF: cpf, Email: email, Password: "testpassword123"})
	require.ErrorIs(t, err, ErrEmailTaken)

	token, loggedIn, err := svc.Login(ctx, email, "testpassword123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	authed, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, _, err = svc.Login(ctx, email, "wrong-password")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login(ctx, "nobody-"+email, "testpassword123")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	db := getTestDB(t)
	svc := NewAuthService(db, &config.AuthConfig{
		SecretKey: "test-secret",
		TokenTTL:  30 * time.Minute,
	}, zap.NewNop())
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	user, err := svc.Register(ctx, RegisterInput{
		Name:     "Inactive User",
		CPF:      suffix[:8] + "003",
		Email:    fmt.Sprintf("inactive-%s@example.com", suffix),
		Password: "testpassword123",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = ?", user.ID) })

	token, err := svc.IssueToken(user.ID, false)
	require.NoError(t, err)

	require.NoError(t, db.Exec("UPDATE users SET is_active = false WHERE id = ?", user.ID).Error)

	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUserInactive)
}
