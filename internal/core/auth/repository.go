package auth

import (
	"context"
	"time"
)

// Repository は認証用ユーザー読み書きの抽象です。
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string, mustChangePassword bool, updatedAt time.Time) error
}

// PasswordHasher はパスワードハッシュの生成と照合の抽象です。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) bool
}

// TokenIssuer は検証可能なアクセストークンの発行の抽象です。
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}
