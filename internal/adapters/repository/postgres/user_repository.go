package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/auth"
	pgdb "github.com/ogurasousui/leave-api-clean-arch/internal/platform/db/postgres"
)

// UserRepository は PostgreSQL を利用した認証ユーザー永続化の実装です。
type UserRepository struct {
	pool pgdb.Queryer
}

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(pool pgdb.Queryer) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, role, department, must_change_password, created_at, updated_at`

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+userColumns+`
          FROM users
         WHERE email = $1
         LIMIT 1
    `, email)

	return scanUser(row)
}

// FindByID は ID でユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+userColumns+`
          FROM users
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanUser(row)
}

// UpdatePassword はパスワードハッシュと変更要求フラグを更新します。
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, mustChangePassword bool, updatedAt time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE users
           SET password_hash = $1,
               must_change_password = $2,
               updated_at = $3
         WHERE id = $4
    `, passwordHash, mustChangePassword, updatedAt, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		id                 string
		email              string
		passwordHash       string
		role               string
		department         string
		mustChangePassword bool
		createdAt          time.Time
		updatedAt          time.Time
	)

	if err := row.Scan(
		&id,
		&email,
		&passwordHash,
		&role,
		&department,
		&mustChangePassword,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.User{
		ID:                 id,
		Email:              email,
		PasswordHash:       passwordHash,
		Role:               auth.Role(role),
		Department:         department,
		MustChangePassword: mustChangePassword,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}, nil
}
