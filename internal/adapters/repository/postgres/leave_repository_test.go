package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/leave"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error {
	return s.scanFn(dest...)
}

func TestScanRequest_Success(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	decidedAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC)

	row := stubRow{scanFn: func(dest ...any) error {
		if len(dest) != 10 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*string)) = "req-1"
		*(dest[1].(*string)) = "user-emp"
		*(dest[2].(*string)) = "ENG"
		*(dest[3].(*time.Time)) = start
		*(dest[4].(*time.Time)) = end
		*(dest[5].(*int)) = 5
		*(dest[6].(*leave.Status)) = leave.StatusApproved

		decidedByDest := dest[7].(*sql.NullString)
		decidedByDest.String = "user-admin"
		decidedByDest.Valid = true

		decidedAtDest := dest[8].(*sql.NullTime)
		decidedAtDest.Time = decidedAt
		decidedAtDest.Valid = true

		*(dest[9].(*time.Time)) = createdAt
		return nil
	}}

	request, err := scanRequest(row)
	if err != nil {
		t.Fatalf("scanRequest returned error: %v", err)
	}

	if request.Days != 5 || request.Status != leave.StatusApproved {
		t.Errorf("unexpected request: %+v", request)
	}
	if request.DecidedByAdminID == nil || *request.DecidedByAdminID != "user-admin" {
		t.Errorf("unexpected decided_by: %+v", request.DecidedByAdminID)
	}
	if request.DecidedAt == nil || !request.DecidedAt.Equal(decidedAt) {
		t.Errorf("unexpected decided_at: %+v", request.DecidedAt)
	}
}

func TestScanRequest_PendingHasNoDecision(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...any) error {
		*(dest[0].(*string)) = "req-1"
		*(dest[6].(*leave.Status)) = leave.StatusPending
		return nil
	}}

	request, err := scanRequest(row)
	if err != nil {
		t.Fatalf("scanRequest returned error: %v", err)
	}

	if request.DecidedByAdminID != nil || request.DecidedAt != nil {
		t.Errorf("pending request must have no decision columns: %+v", request)
	}
}

func TestFindRequestForUpdate_LocksRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewLeaveRepository(mock)

	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM leave_requests\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs("req-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_user_id", "department", "start_date", "end_date", "days", "status", "decided_by_admin_id", "decided_at", "created_at",
		}).AddRow(
			"req-1", "user-emp", "ENG", start, end, 5, leave.StatusPending, nil, nil, createdAt,
		))

	request, err := repo.FindRequestForUpdate(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("FindRequestForUpdate returned error: %v", err)
	}

	if request.ID != "req-1" || request.Status != leave.StatusPending {
		t.Errorf("unexpected request: %+v", request)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindEntitlementForUpdate_LocksRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewLeaveRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM employee_entitlements\s+WHERE user_id = \$1\s+FOR UPDATE`).
		WithArgs("user-emp").
		WillReturnRows(pgxmock.NewRows([]string{
			"user_id", "department", "total_days", "used_days", "remaining_days",
		}).AddRow("user-emp", "ENG", 30, 5, 25))

	entitlement, err := repo.FindEntitlementForUpdate(context.Background(), "user-emp")
	if err != nil {
		t.Fatalf("FindEntitlementForUpdate returned error: %v", err)
	}

	if entitlement.RemainingDays != 25 {
		t.Errorf("unexpected entitlement: %+v", entitlement)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindEntitlement_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewLeaveRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM employee_entitlements`).
		WithArgs("user-missing").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "department", "total_days", "used_days", "remaining_days"}))

	_, err = repo.FindEntitlement(context.Background(), "user-missing")
	if !errors.Is(err, leave.ErrEntitlementNotFound) {
		t.Fatalf("expected ErrEntitlementNotFound, got %v", err)
	}
}

func TestAddUsedDays(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewLeaveRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE employee_entitlements`)).
		WithArgs(5, "user-emp").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.AddUsedDays(context.Background(), "user-emp", 5); err != nil {
		t.Fatalf("AddUsedDays returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddUsedDays_CheckViolationMeansInsufficientBalance(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewLeaveRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE employee_entitlements`)).
		WithArgs(40, "user-emp").
		WillReturnError(&pgconn.PgError{Code: checkViolationCode, ConstraintName: "employee_entitlements_remaining_days_check"})

	err = repo.AddUsedDays(context.Background(), "user-emp", 40)
	if !errors.Is(err, leave.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestMarkRequestDecided_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewLeaveRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE leave_requests`)).
		WithArgs(string(leave.StatusApproved), "user-admin", pgxmock.AnyArg(), "req-missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.MarkRequestDecided(context.Background(), "req-missing", leave.StatusApproved, "user-admin", time.Now().UTC())
	if !errors.Is(err, leave.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestCreateRequest_AssignsID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewLeaveRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO leave_requests`)).
		WithArgs(pgxmock.AnyArg(), "user-emp", "ENG", pgxmock.AnyArg(), pgxmock.AnyArg(), 5, string(leave.StatusPending), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := repo.CreateRequest(context.Background(), &leave.Request{
		EmployeeUserID: "user-emp",
		Department:     "ENG",
		StartDate:      time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Days:           5,
		Status:         leave.StatusPending,
		CreatedAt:      time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}

	if created.ID == "" {
		t.Errorf("expected assigned id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateLeavePgError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "remaining days check",
			in:   &pgconn.PgError{Code: checkViolationCode, ConstraintName: "employee_entitlements_remaining_days_check"},
			want: leave.ErrInsufficientBalance,
		},
		{
			name: "date range check",
			in:   &pgconn.PgError{Code: checkViolationCode, ConstraintName: "leave_requests_check"},
			want: leave.ErrInvalidDateRange,
		},
		{
			name: "foreign key",
			in:   &pgconn.PgError{Code: foreignKeyViolationCode},
			want: leave.ErrEntitlementNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := translateLeavePgError(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
