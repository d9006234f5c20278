package auth

import (
	"strings"
	"time"
)

// Role はユーザーの役割を表します。
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// IsAdmin は管理者系ロールかどうかを判定します。
// "SUPER_ADMIN" のような派生ロールも管理者として扱います。
func (r Role) IsAdmin() bool {
	return strings.Contains(string(r), string(RoleAdmin))
}

// User は認証対象のユーザーエンティティです。
type User struct {
	ID                 string
	Email              string
	PasswordHash       string
	Role               Role
	Department         string
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Identity は検証済みトークンから復元された呼び出し元の同一性情報です。
// 全てのユースケースはこの値を明示的な引数として受け取ります。
type Identity struct {
	ID                 string
	Role               Role
	Department         string
	MustChangePassword bool
}
