package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/techstud-dev/schedule-university/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techstud-dev/schedule-university/internal/auth/domain"
	autherror "github.com/techstud-dev/schedule-university/internal/errors"
	"github.com/techstud-dev/schedule-university/pkg/constant"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenGenerator interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshToken(user *domain.User) (string, error)
	Verify(tokenString string) (*Claims, error)
	RefreshExpiry() time.Duration
	AccessExpiry() time.Duration
}

// Claims is the signed claim-set carried by both token kinds. Roles are present on
// access tokens only.
type Claims struct {
	jwt.RegisteredClaims
	Type  string   `json:"type"`
	Roles []string `json:"roles,omitempty"`
}

// TokenService issues and verifies HS256-signed access and refresh tokens. Tokens are
// self-contained, so verification never touches storage.
type TokenService struct {
	secret        []byte
	issuer        string
	audience      string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewTokenService(secret, issuer, audience string, accessMinutes, refreshMinutes int) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret cannot be empty")
	}

	return &TokenService{
		secret:        []byte(secret),
		issuer:        issuer,
		audience:      audience,
		accessExpiry:  time.Duration(accessMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshMinutes) * time.Minute,
		now:           time.Now,
	}, nil
}

func (ts *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	now := ts.now()
	claims := Claims{
		Type:  TokenTypeAccess,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Audience:  jwt.ClaimStrings{ts.audience},
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

func (ts *TokenService) IssueRefreshToken(user *domain.User) (string, error) {
	now := ts.now()
	claims := Claims{
		Type: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Audience:  jwt.ClaimStrings{ts.audience},
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.refreshExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

// Verify parses the token, checking signature and expiry. Every failure cause maps to
// ErrInvalidToken; callers are not told why a token was rejected.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	tokenString = stripBearer(tokenString)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return ts.now() }))

	if err != nil || !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	return claims, nil
}

// DecodeIssuer reads the issuer claim without verifying the signature. Diagnostic use
// only, never for authorization decisions.
func (ts *TokenService) DecodeIssuer(tokenString string) (string, error) {
	tokenString = stripBearer(tokenString)

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("failed to decode token issuer: %w", err)
	}

	return claims.Issuer, nil
}

func (ts *TokenService) RefreshExpiry() time.Duration {
	return ts.refreshExpiry
}

func (ts *TokenService) AccessExpiry() time.Duration {
	return ts.accessExpiry
}

func stripBearer(token string) string {
	if strings.HasPrefix(token, constant.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(token, constant.BearerPrefix))
	}
	return token
}
