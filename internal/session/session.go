// Package session はセッショントークンと認証済みユーザーの対応付けを管理します。
// トランスポート（Cookie等）には関与せず、ストア実装はDIで差し替えます。
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

const tokenBytes = 32

// ErrNotFound は該当するセッションが存在しないか期限切れの場合に返されます。
var ErrNotFound = errors.New("session not found")

// Session はトークンと認証済みユーザーIDの対応を表します。
// ユーザー本体やパスワードハッシュは保持せず、IDによる参照のみです。
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store はセッションの作成・解決・破棄を抽象化するインターフェースです。
type Store interface {
	// Create は新しいセッションを作成し、トークンを採番します。
	Create(ctx context.Context, userID string) (*Session, error)

	// Resolve はトークンからセッションを解決します。
	// 不明または期限切れのトークンには ErrNotFound を返します。
	Resolve(ctx context.Context, token string) (*Session, error)

	// Renew はセッションの有効期限を延長します（スライディングTTL）。
	Renew(ctx context.Context, token string) error

	// Destroy はセッションを破棄します。存在しないトークンはエラーにしません。
	Destroy(ctx context.Context, token string) error
}

// generateToken は暗号学的に安全なランダムトークンを生成します。
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
