package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studiofin-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// SessionClaims are the claims carried by the dashboard's session tokens. The
// upstream auth provider issues them; this service only verifies.
type SessionClaims struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type SessionVerifier interface {
	Verify(tokenString string) (*domain.Identity, error)
	Issue(identity domain.Identity, ttl time.Duration) (string, error)
}

type sessionVerifier struct {
	secret []byte
}

func NewSessionVerifier(secret string) SessionVerifier {
	return &sessionVerifier{secret: []byte(secret)}
}

func (v *sessionVerifier) Verify(tokenString string) (*domain.Identity, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" || claims.TenantID == "" {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Role:     domain.Role(claims.Role),
	}, nil
}

// Issue signs a session token for the given identity. Used by tests and the
// local development login stub; production tokens come from the auth provider.
func (v *sessionVerifier) Issue(identity domain.Identity, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		UserID:   identity.UserID,
		TenantID: identity.TenantID,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "studiofin",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
