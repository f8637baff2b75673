package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/auth-forge/internal/user"
)

func newStrategyFixture(t *testing.T) (*PasswordStrategy, *user.MemoryStore) {
	t.Helper()
	users := user.NewMemoryStore()

	hash, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	err = users.Create(context.Background(), &user.User{
		Email:        "a@x.com",
		Name:         "A",
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return NewPasswordStrategy(users), users
}

func TestPasswordStrategyVerifySuccess(t *testing.T) {
	strategy, _ := newStrategyFixture(t)

	u, err := strategy.Verify(context.Background(), Credentials{Email: "a@x.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestPasswordStrategyUniformFailure(t *testing.T) {
	strategy, _ := newStrategyFixture(t)
	ctx := context.Background()

	// 不明なメールアドレスとパスワード不一致は区別できてはならない
	_, errUnknown := strategy.Verify(ctx, Credentials{Email: "nobody@x.com", Password: "secret"})
	_, errWrongPw := strategy.Verify(ctx, Credentials{Email: "a@x.com", Password: "wrong"})

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure causes must be indistinguishable: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestHashPasswordRejectsOversizedInput(t *testing.T) {
	long := make([]byte, maxPasswordLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := HashPassword(string(long), bcrypt.MinCost); err == nil {
		t.Fatal("expected error for password over 72 bytes")
	}
}

func TestCheckPasswordEmptyString(t *testing.T) {
	hash, err := HashPassword("", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !CheckPassword("", hash) {
		t.Fatal("empty password must compare like any other string")
	}
	if CheckPassword("not-empty", hash) {
		t.Fatal("unexpected match")
	}
}
