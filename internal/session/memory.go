package session

import (
	"context"
	"sync"
	"time"
)

const cleanupInterval = time.Minute

// MemoryStore は揮発性のインメモリ Store 実装です。
// テストとストアレス開発向けで、プロセス再起動で全セッションが失われます。
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore は MemoryStore を作成し、期限切れセッションの
// 掃除用ゴルーチンを起動します。
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Create は新しいセッションを作成します。
func (s *MemoryStore) Create(ctx context.Context, userID string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	clone := *sess
	return &clone, nil
}

// Resolve はトークンからセッションを解決します。
func (s *MemoryStore) Resolve(ctx context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return nil, ErrNotFound
	}
	clone := *sess
	return &clone, nil
}

// Renew はセッションの有効期限を延長します。
func (s *MemoryStore) Renew(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return ErrNotFound
	}
	sess.ExpiresAt = time.Now().Add(s.ttl)
	return nil
}

// Destroy はセッションを破棄します。
func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Close は掃除用ゴルーチンを停止します。
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
