package employee

import "errors"

var (
	// ErrInvalidEmail はメールアドレスが不正な場合に返却されます。
	ErrInvalidEmail = errors.New("employee: invalid email")
	// ErrInvalidPassword は初期パスワードが要件を満たさない場合に返却されます。
	ErrInvalidPassword = errors.New("employee: invalid password")
	// ErrEmailAlreadyExists はメールアドレス重複時に返却されます。
	ErrEmailAlreadyExists = errors.New("employee: email already exists")
	// ErrEmployeeNotFound は社員が存在しない場合に返却されます。
	ErrEmployeeNotFound = errors.New("employee: not found")
	// ErrForbidden は対象社員が操作者の部署に属さない場合に返却されます。
	ErrForbidden = errors.New("employee: department mismatch")
	// ErrInvalidID はユーザー ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("employee: invalid id")
)
