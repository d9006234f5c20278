package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/employee"
	pgdb "github.com/ogurasousui/leave-api-clean-arch/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// EmailExists はメールアドレスが既に登録済みかどうかを返します。
func (r *EmployeeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateUser は社員アカウントを新規作成します。ID はここで採番されます。
func (r *EmployeeRepository) CreateUser(ctx context.Context, u *employee.User) (*employee.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	created := *u
	created.ID = uuid.NewString()

	_, err := exec.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, role, department, must_change_password, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `,
		created.ID,
		created.Email,
		created.PasswordHash,
		created.Role,
		created.Department,
		created.MustChangePassword,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}

	return &created, nil
}

// CreateEntitlement は休暇残数レコードを新規作成します。
func (r *EmployeeRepository) CreateEntitlement(ctx context.Context, e *employee.Entitlement) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO employee_entitlements (user_id, department, total_days, used_days, remaining_days, created_by_admin_id)
        VALUES ($1, $2, $3, $4, $5, $6)
    `,
		e.UserID,
		e.Department,
		e.TotalDays,
		e.UsedDays,
		e.RemainingDays,
		e.CreatedByAdminID,
	)
	if err != nil {
		return translateEmployeePgError(err)
	}
	return nil
}

// ListByDepartment は部署に属する社員を休暇残数付きで取得します。
func (r *EmployeeRepository) ListByDepartment(ctx context.Context, department string) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT u.id,
               u.email,
               u.department,
               e.total_days,
               e.used_days,
               e.remaining_days,
               u.created_at
          FROM employee_entitlements e
          JOIN users u ON u.id = e.user_id
         WHERE e.department = $1
         ORDER BY u.created_at DESC, u.id DESC
    `, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.UserID,
			&emp.Email,
			&emp.Department,
			&emp.TotalDays,
			&emp.UsedDays,
			&emp.RemainingDays,
			&emp.CreatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, &emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// FindDepartment は社員の所属部署を取得します。
func (r *EmployeeRepository) FindDepartment(ctx context.Context, userID string) (string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var department string
	if err := exec.QueryRow(ctx, `SELECT department FROM employee_entitlements WHERE user_id = $1`, userID).Scan(&department); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", err
	}
	return department, nil
}

// DeleteCascade は休暇申請・休暇残数・ユーザーを明示的にこの順で削除します。
// 外部キーの ON DELETE CASCADE にも同じ規則がありますが、
// 孤児レコードを作らない不変条件はアプリケーション境界でも強制します。
func (r *EmployeeRepository) DeleteCascade(ctx context.Context, userID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	if _, err := exec.Exec(ctx, `DELETE FROM leave_requests WHERE employee_user_id = $1`, userID); err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM employee_entitlements WHERE user_id = $1`, userID); err != nil {
		return err
	}

	tag, err := exec.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return employee.ErrEmailAlreadyExists
		case foreignKeyViolationCode:
			return employee.ErrEmployeeNotFound
		}
	}

	return err
}
