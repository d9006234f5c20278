package auth

import "errors"

var (
	// ErrMissingCredentials はメールアドレスまたはパスワードが未指定の場合に返却されます。
	ErrMissingCredentials = errors.New("auth: email and password are required")
	// ErrInvalidCredentials は認証情報が一致しない場合に返却されます。
	// ユーザー不存在とパスワード不一致は呼び出し元から区別できません。
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrPasswordTooShort は新しいパスワードが短すぎる場合に返却されます。
	ErrPasswordTooShort = errors.New("auth: password too short")
	// ErrPasswordAlreadyChanged は初期パスワード変更が既に完了している場合に返却されます。
	ErrPasswordAlreadyChanged = errors.New("auth: password already changed")
	// ErrUserNotFound はユーザーが存在しない場合に返却されます。
	ErrUserNotFound = errors.New("auth: user not found")
)
