package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName はセッションCookieの名前です。
const CookieName = "af_session"

// CookieCodec はセッショントークンをHMAC署名付きでCookieに載せる
// コーデックです。値の形式は "トークン.署名(hex)" です。
type CookieCodec struct {
	secret []byte
	maxAge int
	secure bool
}

// NewCookieCodec は CookieCodec を作成します。
func NewCookieCodec(secret []byte, maxAge int, secure bool) *CookieCodec {
	return &CookieCodec{
		secret: secret,
		maxAge: maxAge,
		secure: secure,
	}
}

// Encode はトークンに署名を付与したCookie値を返します。
func (cc *CookieCodec) Encode(token string) string {
	return token + "." + cc.sign(token)
}

// Decode はCookie値を検証し、トークンを取り出します。
// 署名の照合は一定時間比較で行います。
func (cc *CookieCodec) Decode(value string) (string, bool) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", false
	}
	expected := cc.sign(token)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(sig)) != 1 {
		return "", false
	}
	return token, true
}

// SetCookie はセッションCookieをレスポンスに設定します。
func (cc *CookieCodec) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, cc.Encode(token), cc.maxAge, "/", "", cc.secure, true)
}

// ClearCookie はセッションCookieを失効させます。
func (cc *CookieCodec) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", cc.secure, true)
}

func (cc *CookieCodec) sign(token string) string {
	mac := hmac.New(sha256.New, cc.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
