// Package auth は認証フロー（サインアップ・ログイン・ログアウト）を提供します。
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/auth-forge/internal/user"
)

// ErrInvalidCredentials は資格情報が一致しない場合に返されます。
// ユーザー不在とパスワード不一致を区別しない単一のエラー値であり、
// アカウント列挙を防ぐため呼び出し側でも同一のメッセージに写像します。
var ErrInvalidCredentials = errors.New("invalid email or password")

// Credentials はログイン要求の資格情報です。
type Credentials struct {
	Email    string
	Password string
}

// Strategy は資格情報の検証方式を抽象化するインターフェースです。
// ローカルパスワード以外の方式（フェデレーション等）もハンドラーを
// 変更せずに差し替えられます。
type Strategy interface {
	// Verify は資格情報を検証し、一致したユーザーを返します。
	// 不一致は ErrInvalidCredentials、それ以外はストア障害です。
	Verify(ctx context.Context, creds Credentials) (*user.User, error)
}

// PasswordStrategy はストア上のbcryptハッシュと照合するローカル方式です。
type PasswordStrategy struct {
	users user.Store
}

// NewPasswordStrategy は PasswordStrategy を作成します。
func NewPasswordStrategy(users user.Store) *PasswordStrategy {
	return &PasswordStrategy{users: users}
}

// Verify はメールアドレスでユーザーを引き、パスワードを照合します。
func (s *PasswordStrategy) Verify(ctx context.Context, creds Credentials) (*user.User, error) {
	u, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(creds.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
