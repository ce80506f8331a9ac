package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims mirror the payload issued at login: id, email, name, role, is_verified.
type Claims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	UserType   string `json:"user_type,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

// Identity is what a token is issued for.
type Identity struct {
	UserID     int64
	Email      string
	Name       string
	Role       string
	IsVerified bool
}

type TokenManager struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		signingKey: []byte(secret),
		ttl:        ttl,
	}
}

func (m *TokenManager) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", id.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID:     id.UserID,
		Email:      id.Email,
		Name:       id.Name,
		Role:       id.Role,
		IsVerified: id.IsVerified,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
}

func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	// Older tokens carry the role as user_type.
	if claims.Role == "" {
		claims.Role = claims.UserType
	}
	return claims, nil
}

var (
	defaultMu      sync.RWMutex
	defaultManager = NewTokenManager("your_secret_key", 7*24*time.Hour)
)

// Configure replaces the process-wide token manager used by GenerateToken and ParseToken.
func Configure(secret string, ttl time.Duration) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = NewTokenManager(secret, ttl)
}

func GenerateToken(id Identity) (string, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultManager.Issue(id)
}

func ParseToken(tokenStr string) (*Claims, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultManager.Parse(tokenStr)
}
