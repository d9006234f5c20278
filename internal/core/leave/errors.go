package leave

import "errors"

var (
	// ErrInvalidDateRange は日付が不正、または日数が 1 日未満の場合に返却されます。
	ErrInvalidDateRange = errors.New("leave: invalid date range")
	// ErrInvalidDecision は決裁値が APPROVED / DECLINED 以外の場合に返却されます。
	ErrInvalidDecision = errors.New("leave: invalid decision")
	// ErrRequestNotFound は休暇申請が存在しない場合に返却されます。
	ErrRequestNotFound = errors.New("leave: request not found")
	// ErrEntitlementNotFound は社員の休暇残数レコードが存在しない場合に返却されます。
	ErrEntitlementNotFound = errors.New("leave: entitlement not found")
	// ErrForbidden は申請の部署と決裁者の部署が一致しない場合に返却されます。
	ErrForbidden = errors.New("leave: department mismatch")
	// ErrAlreadyDecided は決裁済みの申請を再決裁しようとした場合に返却されます。
	ErrAlreadyDecided = errors.New("leave: request already decided")
	// ErrNoRemainingBalance は休暇残数が尽きている場合に返却されます。
	ErrNoRemainingBalance = errors.New("leave: no remaining balance")
	// ErrInsufficientBalance は申請日数が休暇残数を超える場合に返却されます。
	ErrInsufficientBalance = errors.New("leave: insufficient balance")
	// ErrInvalidID は申請 ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("leave: invalid id")
)
