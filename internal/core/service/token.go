package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
	"github.com/taskgrid/task-tracker-api/internal/core/ports"
)

// TokenKind distinguishes the two token flavours carried in the "type" claim.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

const bearerTokenType = "Bearer"

// TokenClaims is the signed payload: subject user id, token kind, and the
// standard iat/exp pair.
type TokenClaims struct {
	Kind TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens. Access tokens are short-lived
// (minutes-scale), refresh tokens long-lived (days-scale); the two are
// structurally identical apart from kind and TTL.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Encode stamps issued-at and expiry and signs a token for userID.
func (m *TokenManager) Encode(userID string, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Decode verifies the signature, structure, signing algorithm and expiry of
// tokenString. Every failure collapses into domain.ErrInvalidToken so callers
// cannot leak why a token was rejected.
func (m *TokenManager) Decode(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// AssertAccessToken fails with domain.ErrInvalidTokenType unless kind is an
// access token. It keeps refresh tokens out of API-call positions.
func (m *TokenManager) AssertAccessToken(kind TokenKind) error {
	if kind != TokenKindAccess {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTokenType, kind)
	}
	return nil
}

// IssuePair issues an access and a refresh token bound to user.ID.
func (m *TokenManager) IssuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := m.Encode(user.ID, TokenKindAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.Encode(user.ID, TokenKindRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearerTokenType,
	}, nil
}
