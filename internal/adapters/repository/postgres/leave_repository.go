package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/leave"
	pgdb "github.com/ogurasousui/leave-api-clean-arch/internal/platform/db/postgres"
)

// LeaveRepository は PostgreSQL を利用した休暇申請・休暇残数永続化の実装です。
type LeaveRepository struct {
	pool pgdb.Queryer
}

// NewLeaveRepository は LeaveRepository を生成します。
func NewLeaveRepository(pool pgdb.Queryer) *LeaveRepository {
	return &LeaveRepository{pool: pool}
}

// CreateRequest は休暇申請を新規作成します。ID はここで採番されます。
func (r *LeaveRepository) CreateRequest(ctx context.Context, request *leave.Request) (*leave.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	created := *request
	created.ID = uuid.NewString()

	_, err := exec.Exec(ctx, `
        INSERT INTO leave_requests (id, employee_user_id, department, start_date, end_date, days, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `,
		created.ID,
		created.EmployeeUserID,
		created.Department,
		created.StartDate,
		created.EndDate,
		created.Days,
		string(created.Status),
		created.CreatedAt,
	)
	if err != nil {
		return nil, translateLeavePgError(err)
	}

	return &created, nil
}

// FindRequestForUpdate は休暇申請を排他ロック付きで取得します。
// ロックはトランザクションのコミットまたはロールバックまで保持されるため、
// 必ず読み書きトランザクション内から呼び出してください。
func (r *LeaveRepository) FindRequestForUpdate(ctx context.Context, id string) (*leave.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_user_id, department, start_date, end_date, days, status, decided_by_admin_id, decided_at, created_at
          FROM leave_requests
         WHERE id = $1
           FOR UPDATE
    `, id)

	return scanRequest(row)
}

// MarkRequestDecided は申請の状態と決裁情報を更新します。
func (r *LeaveRepository) MarkRequestDecided(ctx context.Context, id string, status leave.Status, adminID string, decidedAt time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE leave_requests
           SET status = $1,
               decided_by_admin_id = $2,
               decided_at = $3
         WHERE id = $4
    `, string(status), adminID, decidedAt, id)
	if err != nil {
		return translateLeavePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// ListRequestsByDepartment は部署の申請を申請者メールアドレス付きで新しい順に取得します。
func (r *LeaveRepository) ListRequestsByDepartment(ctx context.Context, department string) ([]*leave.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT lr.id, lr.employee_user_id, u.email, lr.department, lr.start_date, lr.end_date, lr.days, lr.status, lr.decided_by_admin_id, lr.decided_at, lr.created_at
          FROM leave_requests lr
          JOIN users u ON u.id = lr.employee_user_id
         WHERE lr.department = $1
         ORDER BY lr.created_at DESC, lr.id DESC
    `, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows, true)
}

// ListRequestsByEmployee は社員自身の申請を新しい順に取得します。
func (r *LeaveRepository) ListRequestsByEmployee(ctx context.Context, employeeUserID string) ([]*leave.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, employee_user_id, department, start_date, end_date, days, status, decided_by_admin_id, decided_at, created_at
          FROM leave_requests
         WHERE employee_user_id = $1
         ORDER BY created_at DESC, id DESC
    `, employeeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows, false)
}

// FindEntitlement は休暇残数を取得します。
func (r *LeaveRepository) FindEntitlement(ctx context.Context, employeeUserID string) (*leave.Entitlement, error) {
	return r.findEntitlement(ctx, employeeUserID, false)
}

// FindEntitlementForUpdate は休暇残数を排他ロック付きで取得します。
func (r *LeaveRepository) FindEntitlementForUpdate(ctx context.Context, employeeUserID string) (*leave.Entitlement, error) {
	return r.findEntitlement(ctx, employeeUserID, true)
}

func (r *LeaveRepository) findEntitlement(ctx context.Context, employeeUserID string, forUpdate bool) (*leave.Entitlement, error) {
	query := `
        SELECT user_id, department, total_days, used_days, remaining_days
          FROM employee_entitlements
         WHERE user_id = $1
    `
	if forUpdate {
		query += ` FOR UPDATE`
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, query, employeeUserID)

	var entitlement leave.Entitlement
	if err := row.Scan(
		&entitlement.UserID,
		&entitlement.Department,
		&entitlement.TotalDays,
		&entitlement.UsedDays,
		&entitlement.RemainingDays,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrEntitlementNotFound
		}
		return nil, err
	}

	return &entitlement, nil
}

// AddUsedDays は消化日数を加算し残数を同じだけ減算します。
// remaining_days >= 0 の CHECK 制約違反は残数不足として報告されます。
func (r *LeaveRepository) AddUsedDays(ctx context.Context, employeeUserID string, days int) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE employee_entitlements
           SET used_days = used_days + $1,
               remaining_days = remaining_days - $1
         WHERE user_id = $2
    `, days, employeeUserID)
	if err != nil {
		return translateLeavePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrEntitlementNotFound
	}
	return nil
}

type requestScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row requestScanner) (*leave.Request, error) {
	var (
		request   leave.Request
		decidedBy sql.NullString
		decidedAt sql.NullTime
	)

	if err := row.Scan(
		&request.ID,
		&request.EmployeeUserID,
		&request.Department,
		&request.StartDate,
		&request.EndDate,
		&request.Days,
		&request.Status,
		&decidedBy,
		&decidedAt,
		&request.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrRequestNotFound
		}
		return nil, err
	}

	applyDecisionColumns(&request, decidedBy, decidedAt)
	return &request, nil
}

func collectRequests(rows pgx.Rows, withEmail bool) ([]*leave.Request, error) {
	var requests []*leave.Request
	for rows.Next() {
		var (
			request   leave.Request
			decidedBy sql.NullString
			decidedAt sql.NullTime
		)

		dest := []any{&request.ID, &request.EmployeeUserID}
		if withEmail {
			dest = append(dest, &request.EmployeeEmail)
		}
		dest = append(dest,
			&request.Department,
			&request.StartDate,
			&request.EndDate,
			&request.Days,
			&request.Status,
			&decidedBy,
			&decidedAt,
			&request.CreatedAt,
		)

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		applyDecisionColumns(&request, decidedBy, decidedAt)
		requests = append(requests, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func applyDecisionColumns(request *leave.Request, decidedBy sql.NullString, decidedAt sql.NullTime) {
	if decidedBy.Valid {
		v := decidedBy.String
		request.DecidedByAdminID = &v
	}
	if decidedAt.Valid {
		v := decidedAt.Time.UTC()
		request.DecidedAt = &v
	}
}

func translateLeavePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkViolationCode:
			switch pgErr.ConstraintName {
			case "employee_entitlements_remaining_days_check":
				return leave.ErrInsufficientBalance
			default:
				return leave.ErrInvalidDateRange
			}
		case foreignKeyViolationCode:
			return leave.ErrEntitlementNotFound
		}
	}

	return err
}
