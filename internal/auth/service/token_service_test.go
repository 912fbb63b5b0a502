package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sareemart/internal/config"
	"sareemart/internal/domain"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(config.AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "sareemart-test",
		TokenTTL:  ttl,
	})
}

func TestTokenService_IssueAndResolve(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	user := &domain.User{ID: "u-42", Role: domain.RoleAdmin}
	token, err := svc.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	principal := svc.Resolve(token)
	assert.False(t, principal.IsAnonymous())
	assert.Equal(t, "u-42", principal.ID)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
}

func TestTokenService_Resolve_EmptyEvidence(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	principal := svc.Resolve("")
	assert.True(t, principal.IsAnonymous())
}

func TestTokenService_Resolve_GarbageToken(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	principal := svc.Resolve("not-a-jwt")
	assert.True(t, principal.IsAnonymous())
}

func TestTokenService_Resolve_ExpiredDegradesToAnonymous(t *testing.T) {
	svc := newTestTokenService(-time.Minute)

	token, err := svc.Issue(&domain.User{ID: "u-1", Role: domain.RoleCustomer})
	assert.NoError(t, err)

	// Expiry is routine, not an error: the resolver returns Anonymous.
	principal := svc.Resolve(token)
	assert.True(t, principal.IsAnonymous())
}

func TestTokenService_Resolve_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(time.Hour)
	token, err := issuer.Issue(&domain.User{ID: "u-1", Role: domain.RoleCustomer})
	assert.NoError(t, err)

	other := NewTokenService(config.AuthConfig{
		JWTSecret: "different-secret",
		Issuer:    "sareemart-test",
		TokenTTL:  time.Hour,
	})

	principal := other.Resolve(token)
	assert.True(t, principal.IsAnonymous())
}

func TestTokenService_Resolve_WrongIssuer(t *testing.T) {
	issuer := NewTokenService(config.AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "someone-else",
		TokenTTL:  time.Hour,
	})
	token, err := issuer.Issue(&domain.User{ID: "u-1", Role: domain.RoleCustomer})
	assert.NoError(t, err)

	svc := newTestTokenService(time.Hour)
	principal := svc.Resolve(token)
	assert.True(t, principal.IsAnonymous())
}

func TestTokenService_Resolve_NeverPartiallyPopulated(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	token, err := svc.Issue(&domain.User{ID: "u-7", Role: domain.RoleStaff})
	assert.NoError(t, err)

	principal := svc.Resolve(token)
	if !principal.IsAnonymous() {
		assert.NotEmpty(t, principal.ID)
		assert.NotEmpty(t, principal.Role)
	}
}
