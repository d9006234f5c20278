package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher は bcrypt によるパスワードハッシュの生成と照合を行います。
type Hasher struct {
	cost int
}

// NewHasher は指定されたコストで Hasher を生成します。
// コストが範囲外の場合は bcrypt.DefaultCost を使用します。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文パスワードからハッシュを生成します。
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(b), nil
}

// Compare はハッシュと平文パスワードを照合し、一致すれば true を返します。
func (h *Hasher) Compare(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
