package employee

import "time"

// RoleEmployee は本パッケージが作成するアカウントのロールです。
const RoleEmployee = "EMPLOYEE"

// User は社員として新規作成されるアカウントです。
type User struct {
	ID                 string
	Email              string
	PasswordHash       string
	Role               string
	Department         string
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Entitlement は社員作成時に同時付与される休暇日数カウンターです。
type Entitlement struct {
	UserID           string
	Department       string
	TotalDays        int
	UsedDays         int
	RemainingDays    int
	CreatedByAdminID string
}

// Employee は一覧表示用の社員ビューです。
type Employee struct {
	UserID        string
	Email         string
	Department    string
	TotalDays     int
	UsedDays      int
	RemainingDays int
	CreatedAt     time.Time
}

// Actor はユースケースを呼び出す認証済み管理者です。
type Actor struct {
	ID         string
	Department string
}
