package auth

import (
	"context"
	"errors"
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

const minPasswordLength = 6

// Service は認証に関するユースケースをまとめます。
type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
	clock  Clock
}

// UseCase は認証ユースケースの公開インターフェースです。
type UseCase interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	ChangePassword(ctx context.Context, identity Identity, in ChangePasswordInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens, clock: clock}
}

// LoginInput はログイン時の入力です。
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult はログイン成功時の結果です。
type LoginResult struct {
	Token              string
	Role               Role
	Department         string
	MustChangePassword bool
}

// ChangePasswordInput は初期パスワード変更時の入力です。
type ChangePasswordInput struct {
	NewPassword string
}

// Login は認証情報を検証しアクセストークンを発行します。
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// ユーザー不存在は認証失敗として扱い、存在の有無を露出しません。
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Identity{
		ID:                 user.ID,
		Role:               user.Role,
		Department:         user.Department,
		MustChangePassword: user.MustChangePassword,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:              token,
		Role:               user.Role,
		Department:         user.Department,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

// ChangePassword は初回ログイン時の強制パスワード変更を行います。
// 変更済みのユーザーからの再変更は拒否されます。
func (s *Service) ChangePassword(ctx context.Context, identity Identity, in ChangePasswordInput) error {
	if !identity.MustChangePassword {
		return ErrPasswordAlreadyChanged
	}

	if len(in.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, identity.ID, hashed, false, s.clock.Now())
}
