package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore はテストおよびストアレス開発用のインメモリ Store 実装です。
// メールアドレスの一意性チェックと挿入は同一ロック内で行います。
type MemoryStore struct {
	mu      sync.Mutex
	byEmail map[string]*User
	byID    map[string]*User
}

// NewMemoryStore は MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

// FindByEmail はメールアドレスでユーザーを検索します。
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

// FindByID はIDでユーザーを検索します。
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

// Create はユーザーを保存します。同一メールアドレスが既に存在する場合は
// ErrDuplicateEmail を返します（insert if absent）。
func (s *MemoryStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[u.Email]; ok {
		return ErrDuplicateEmail
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	clone := *u
	s.byEmail[clone.Email] = &clone
	s.byID[clone.ID] = &clone
	return nil
}
