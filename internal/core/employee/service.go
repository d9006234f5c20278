package employee

import (
	"context"
	"regexp"
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

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service は社員管理に関するユースケースをまとめます。
type Service struct {
	repo             Repository
	hasher           PasswordHasher
	clock            Clock
	tx               TransactionManager
	defaultTotalDays int
}

// UseCase は社員管理ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, actor Actor, in CreateEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context, actor Actor) ([]*Employee, error)
	DeleteEmployee(ctx context.Context, actor Actor, in DeleteEmployeeInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, hasher PasswordHasher, clock Clock, tx TransactionManager, defaultTotalDays int) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, hasher: hasher, clock: clock, tx: tx, defaultTotalDays: defaultTotalDays}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	Email    string
	Password string
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	UserID string
}

// CreateEmployee は社員アカウントと休暇残数を同一トランザクションで作成します。
// 部署は操作した管理者の部署が引き継がれます。
func (s *Service) CreateEmployee(ctx context.Context, actor Actor, in CreateEmployeeInput) (*Employee, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if len(in.Password) < minPasswordLength {
		return nil, ErrInvalidPassword
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.EmailExists(txCtx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailAlreadyExists
		}

		now := s.clock.Now()
		user, err := s.repo.CreateUser(txCtx, &User{
			Email:              email,
			PasswordHash:       hashed,
			Role:               RoleEmployee,
			Department:         actor.Department,
			MustChangePassword: true,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			return err
		}

		entitlement := &Entitlement{
			UserID:           user.ID,
			Department:       actor.Department,
			TotalDays:        s.defaultTotalDays,
			UsedDays:         0,
			RemainingDays:    s.defaultTotalDays,
			CreatedByAdminID: actor.ID,
		}
		if err := s.repo.CreateEntitlement(txCtx, entitlement); err != nil {
			return err
		}

		created = &Employee{
			UserID:        user.ID,
			Email:         user.Email,
			Department:    user.Department,
			TotalDays:     entitlement.TotalDays,
			UsedDays:      entitlement.UsedDays,
			RemainingDays: entitlement.RemainingDays,
			CreatedAt:     user.CreatedAt,
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// ListEmployees は操作者の部署に属する社員を休暇残数付きで返します。
func (s *Service) ListEmployees(ctx context.Context, actor Actor) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByDepartment(txCtx, actor.Department)
		if err != nil {
			return err
		}
		employees = result
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

// DeleteEmployee は社員を休暇申請・休暇残数ごと削除します。
// 対象が操作者の部署に属さない場合は拒否されます。
func (s *Service) DeleteEmployee(ctx context.Context, actor Actor, in DeleteEmployeeInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return ErrInvalidID
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		department, err := s.repo.FindDepartment(txCtx, in.UserID)
		if err != nil {
			return err
		}

		if department != actor.Department {
			return ErrForbidden
		}

		return s.repo.DeleteCascade(txCtx, in.UserID)
	})
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" || !emailPattern.MatchString(trimmed) {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}
