package employee

import "context"

// Repository は社員アカウントと休暇残数の永続化の抽象です。
type Repository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	CreateEntitlement(ctx context.Context, entitlement *Entitlement) error
	ListByDepartment(ctx context.Context, department string) ([]*Employee, error)
	FindDepartment(ctx context.Context, userID string) (string, error)
	// DeleteCascade は休暇申請・休暇残数・ユーザーをこの順で削除します。
	DeleteCascade(ctx context.Context, userID string) error
}

// PasswordHasher はパスワードハッシュ生成の抽象です。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}
