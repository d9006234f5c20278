package leave

import (
	"context"
	"time"
)

// Repository は休暇申請と休暇残数の永続化の抽象です。
//
// ForUpdate 系のメソッドは対象行の排他ロックを取得します。トランザクション外で
// 呼び出した場合のロックはステートメント終了時に解放されるため、必ず
// TransactionManager.WithinReadWrite のクロージャ内から呼び出してください。
type Repository interface {
	CreateRequest(ctx context.Context, request *Request) (*Request, error)
	FindRequestForUpdate(ctx context.Context, id string) (*Request, error)
	MarkRequestDecided(ctx context.Context, id string, status Status, adminID string, decidedAt time.Time) error
	ListRequestsByDepartment(ctx context.Context, department string) ([]*Request, error)
	ListRequestsByEmployee(ctx context.Context, employeeUserID string) ([]*Request, error)

	FindEntitlement(ctx context.Context, employeeUserID string) (*Entitlement, error)
	FindEntitlementForUpdate(ctx context.Context, employeeUserID string) (*Entitlement, error)
	// AddUsedDays は used_days を加算し remaining_days を同じだけ減算します。
	AddUsedDays(ctx context.Context, employeeUserID string, days int) error
}
