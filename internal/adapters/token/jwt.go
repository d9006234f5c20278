package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/auth"
)

// ErrInvalidToken はトークンの検証に失敗した場合に返却されます。
var ErrInvalidToken = errors.New("token: invalid token")

// Manager は HS256 署名による認証トークンの発行と検証を行います。
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager は Manager を生成します。
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue は Identity の内容を claims として持つトークンを発行します。
func (m *Manager) Issue(identity auth.Identity) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":                  identity.ID,
		"role":                 string(identity.Role),
		"department":           identity.Department,
		"must_change_password": identity.MustChangePassword,
		"iat":                  now.Unix(),
		"exp":                  now.Add(m.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し Identity を復元します。
// 署名方式が HMAC 以外のトークンは拒否されます。
func (m *Manager) Verify(tokenString string) (auth.Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("token: unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return auth.Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	department, _ := claims["department"].(string)
	mustChange, _ := claims["must_change_password"].(bool)

	if sub == "" || role == "" {
		return auth.Identity{}, ErrInvalidToken
	}

	return auth.Identity{
		ID:                 sub,
		Role:               auth.Role(role),
		Department:         department,
		MustChangePassword: mustChange,
	}, nil
}
