package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt は72バイトを超える入力を切り詰めるため、事前に拒否します。
const maxPasswordLen = 72

// HashPassword はパスワードを指定コストのbcryptでハッシュ化します。
func HashPassword(password string, cost int) (string, error) {
	if len(password) > maxPasswordLen {
		return "", errors.New("password exceeds 72 bytes")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword は平文パスワードとbcryptハッシュを照合します。
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
