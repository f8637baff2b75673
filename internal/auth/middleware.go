package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-forge/internal/session"
	"github.com/yourusername/auth-forge/internal/user"
)

const (
	// contextUserKey は認証済みユーザーをハンドラー間で共有するキーです。
	contextUserKey = "auth.user"
	// contextTokenKey は解決済みセッショントークンを共有するキーです。
	contextTokenKey = "auth.token"
)

// RequireLogin はセッションCookieを検証し、認証済みユーザーを
// リクエストコンテキストに載せるミドルウェアを返します。
// セッションにはユーザーIDしか入っていないため、ユーザー本体は
// リクエストごとにストアから引き直します。
func (h *Handler) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(CookieName)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		token, ok := h.cookies.Decode(value)
		if !ok {
			abortUnauthorized(c)
			return
		}

		ctx := c.Request.Context()

		sess, err := h.sessions.Resolve(ctx, token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Error resolving session",
					"success": false,
				})
				return
			}
			h.cookies.ClearCookie(c)
			abortUnauthorized(c)
			return
		}

		u, err := h.users.FindByID(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				// 消えたユーザーのセッションは残さない
				_ = h.sessions.Destroy(ctx, token)
				h.cookies.ClearCookie(c)
				abortUnauthorized(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Error resolving session",
				"success": false,
			})
			return
		}

		_ = h.sessions.Renew(ctx, token)

		c.Set(contextUserKey, u)
		c.Set(contextTokenKey, token)
		c.Next()
	}
}

// CurrentUser はコンテキストから認証済みユーザーを取り出します。
// 未認証の場合は nil を返します。
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}

// CurrentToken はコンテキストからセッショントークンを取り出します。
func CurrentToken(c *gin.Context) string {
	v, ok := c.Get(contextTokenKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": "Authentication required",
		"success": false,
	})
}
