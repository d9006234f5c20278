package leave

import "time"

// Status は休暇申請のライフサイクル状態を表します。
// 遷移は PENDING → APPROVED または PENDING → DECLINED のみで、逆方向や再決裁はありません。
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDeclined Status = "DECLINED"
)

// IsDecision は管理者が下せる決裁値かどうかを判定します。
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusDeclined
}

// Request は休暇申請エンティティです。
type Request struct {
	ID               string
	EmployeeUserID   string
	EmployeeEmail    string
	Department       string
	StartDate        time.Time
	EndDate          time.Time
	Days             int
	Status           Status
	DecidedByAdminID *string
	DecidedAt        *time.Time
	CreatedAt        time.Time
}

// Entitlement は社員一人あたりの休暇日数カウンターです。
// RemainingDays == TotalDays - UsedDays が常に成立します。
type Entitlement struct {
	UserID        string
	Department    string
	TotalDays     int
	UsedDays      int
	RemainingDays int
}

// Actor はユースケースを呼び出す認証済みユーザーです。
type Actor struct {
	ID         string
	Department string
}

// InclusiveDays は開始日と終了日を両端含みで数えた日数を返します。
func InclusiveDays(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}
