package leave

import (
	"context"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は休暇申請に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase は休暇ユースケースの公開インターフェースです。
type UseCase interface {
	Submit(ctx context.Context, actor Actor, in SubmitInput) (*Request, error)
	Decide(ctx context.Context, actor Actor, in DecideInput) (*Request, error)
	Balance(ctx context.Context, actor Actor) (*Entitlement, error)
	ListDepartmentRequests(ctx context.Context, actor Actor) ([]*Request, error)
	ListMyRequests(ctx context.Context, actor Actor) ([]*Request, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// SubmitInput は休暇申請時の入力です。日数は常にサーバー側で算出します。
type SubmitInput struct {
	StartDate time.Time
	EndDate   time.Time
}

// DecideInput は決裁時の入力です。
type DecideInput struct {
	RequestID string
	Decision  Status
}

// Submit は休暇申請を作成します。
//
// 残数チェックは申請時点の値に対する事前確認であり、何も引き当てません。
// 承認の瞬間に再検証されるため、同一社員の申請合計が残数を超えることは許容されます。
func (s *Service) Submit(ctx context.Context, actor Actor, in SubmitInput) (*Request, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, ErrInvalidDateRange
	}

	days := InclusiveDays(in.StartDate, in.EndDate)
	if days < 1 {
		return nil, ErrInvalidDateRange
	}

	var created *Request
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		entitlement, err := s.repo.FindEntitlement(txCtx, actor.ID)
		if err != nil {
			return err
		}

		if entitlement.RemainingDays <= 0 {
			return ErrNoRemainingBalance
		}
		if days > entitlement.RemainingDays {
			return ErrInsufficientBalance
		}

		request := &Request{
			EmployeeUserID: actor.ID,
			Department:     actor.Department,
			StartDate:      normalizeDate(in.StartDate),
			EndDate:        normalizeDate(in.EndDate),
			Days:           days,
			Status:         StatusPending,
			CreatedAt:      s.clock.Now(),
		}

		result, err := s.repo.CreateRequest(txCtx, request)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// Decide は休暇申請を承認または却下します。
//
// 申請行と残数行の排他ロック、決裁済みチェック、残数の再検証、
// 両テーブルへの書き込みを単一トランザクションで実行します。
// 途中でどの検証に失敗しても一切の書き込みは残りません。
func (s *Service) Decide(ctx context.Context, actor Actor, in DecideInput) (*Request, error) {
	if strings.TrimSpace(in.RequestID) == "" {
		return nil, ErrInvalidID
	}
	if !in.Decision.IsDecision() {
		return nil, ErrInvalidDecision
	}

	var decided *Request
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		request, err := s.repo.FindRequestForUpdate(txCtx, in.RequestID)
		if err != nil {
			return err
		}

		if request.Department != actor.Department {
			return ErrForbidden
		}

		if request.Status != StatusPending {
			return ErrAlreadyDecided
		}

		if in.Decision == StatusApproved {
			entitlement, err := s.repo.FindEntitlementForUpdate(txCtx, request.EmployeeUserID)
			if err != nil {
				return err
			}

			// 申請後に他の承認が残数を消費している可能性があるため、ここで必ず再検証します。
			if request.Days > entitlement.RemainingDays {
				return ErrInsufficientBalance
			}

			if err := s.repo.AddUsedDays(txCtx, request.EmployeeUserID, request.Days); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		if err := s.repo.MarkRequestDecided(txCtx, request.ID, in.Decision, actor.ID, now); err != nil {
			return err
		}

		request.Status = in.Decision
		adminID := actor.ID
		request.DecidedByAdminID = &adminID
		request.DecidedAt = &now
		decided = request
		return nil
	}); err != nil {
		return nil, err
	}

	return decided, nil
}

// Balance は呼び出し元社員の休暇残数を返します。
func (s *Service) Balance(ctx context.Context, actor Actor) (*Entitlement, error) {
	var result *Entitlement
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		entitlement, err := s.repo.FindEntitlement(txCtx, actor.ID)
		if err != nil {
			return err
		}
		result = entitlement
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListDepartmentRequests は決裁者の部署に属する申請を新しい順に返します。
func (s *Service) ListDepartmentRequests(ctx context.Context, actor Actor) ([]*Request, error) {
	var requests []*Request
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListRequestsByDepartment(txCtx, actor.Department)
		if err != nil {
			return err
		}
		requests = result
		return nil
	}); err != nil {
		return nil, err
	}

	return requests, nil
}

// ListMyRequests は呼び出し元社員自身の申請を新しい順に返します。
func (s *Service) ListMyRequests(ctx context.Context, actor Actor) ([]*Request, error) {
	var requests []*Request
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListRequestsByEmployee(txCtx, actor.ID)
		if err != nil {
			return err
		}
		requests = result
		return nil
	}); err != nil {
		return nil, err
	}

	return requests, nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
