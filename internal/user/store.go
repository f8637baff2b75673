package user

import (
	"context"
	"errors"
)

var (
	// ErrNotFound は該当するユーザーが存在しない場合に返されます。
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail は同じメールアドレスのユーザーが既に存在する場合に返されます。
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store はユーザードキュメントの永続化を抽象化するインターフェースです。
// メールアドレスの一意性はストア側で保証します（insert if absent）。
type Store interface {
	// FindByEmail はメールアドレスでユーザーを検索します。
	// 存在しない場合は ErrNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID はIDでユーザーを検索します。
	// 存在しない場合は ErrNotFound を返します。
	FindByID(ctx context.Context, id string) (*User, error)

	// Create はユーザーを新規保存します。ID が空の場合は採番します。
	// メールアドレスが重複している場合は ErrDuplicateEmail を返します。
	Create(ctx context.Context, u *User) error
}
