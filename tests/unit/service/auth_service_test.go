package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"beanvault/internal/config"
	"beanvault/internal/domain"
	"beanvault/internal/service"
)

func newAuthService(t *testing.T, password string) service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "beanvault-test",
	}
	authCfg := config.AuthConfig{
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
	}
	return service.NewAuthService(jwtCfg, authCfg)
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t, "correct-horse")

	token, err := svc.Login(service.LoginInput{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(t, "correct-horse")

	_, err := svc.Login(service.LoginInput{Username: "admin", Password: "battery-staple"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongUsername(t *testing.T) {
	svc := newAuthService(t, "correct-horse")

	_, err := svc.Login(service.LoginInput{Username: "root", Password: "correct-horse"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_NoHashConfigured(t *testing.T) {
	svc := service.NewAuthService(
		config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour},
		config.AuthConfig{AdminUser: "admin", AdminPasswordHash: ""},
	)

	// Without a configured hash no password is acceptable, including empty.
	_, err := svc.Login(service.LoginInput{Username: "admin", Password: ""})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Roundtrip(t *testing.T) {
	svc := newAuthService(t, "correct-horse")

	token, err := svc.Login(service.LoginInput{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "beanvault-test", claims.Issuer)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := newAuthService(t, "correct-horse")

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	svc := newAuthService(t, "correct-horse")
	token, err := svc.Login(service.LoginInput{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)

	other := service.NewAuthService(
		config.JWTConfig{Secret: "different-secret", AccessTokenExpiry: time.Hour},
		config.AuthConfig{AdminUser: "admin", AdminPasswordHash: "x"},
	)
	_, err = other.ValidateToken(token.AccessToken)
	require.Error(t, err)
}
