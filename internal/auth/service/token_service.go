package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sareemart/internal/config"
	"sareemart/internal/domain"
)

// SessionCookie is the cookie the storefront sets on login. Requests may
// alternatively carry the same token as an Authorization bearer header.
const SessionCookie = "session"

type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
	}
}

func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iss":  s.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Resolve turns raw session evidence into a Principal. Missing, malformed or
// expired tokens degrade to Anonymous; routine expiry is not an error here.
func (s *TokenService) Resolve(raw string) domain.Principal {
	if raw == "" {
		return domain.Anonymous
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return domain.Anonymous
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Anonymous
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return domain.Anonymous
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return domain.Anonymous
	}

	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.Anonymous
	}

	return domain.Principal{ID: sub, Role: role}
}
