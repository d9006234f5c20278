package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/ogurasousui/leave-api-clean-arch/internal/core/auth"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestFindByEmail_Success(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	createdAt := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "password_hash", "role", "department", "must_change_password", "created_at", "updated_at",
		}).AddRow(
			"user-admin", "admin@example.com", "hashed-pw", "ADMIN", "ENG", false, createdAt, createdAt,
		))

	user, err := repo.FindByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}

	if user.Role != auth.RoleAdmin || user.Department != "ENG" {
		t.Errorf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "password_hash", "role", "department", "must_change_password", "created_at", "updated_at",
		}))

	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	updatedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("new-hash", false, updatedAt, "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdatePassword(context.Background(), "user-1", "new-hash", false, updatedAt); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePassword_UserMissing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("new-hash", false, pgxmock.AnyArg(), "user-missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdatePassword(context.Background(), "user-missing", "new-hash", false, time.Now().UTC())
	if !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
