package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-forge/internal/session"
	"github.com/yourusername/auth-forge/internal/user"
)

// Handler は認証フローのHTTPハンドラー群です。
// ユーザーストア・セッションストア・検証方式はすべてDIで受け取ります。
type Handler struct {
	users      user.Store
	sessions   session.Store
	strategy   Strategy
	cookies    *CookieCodec
	bcryptCost int
}

// NewHandler は Handler を作成します。
func NewHandler(users user.Store, sessions session.Store, strategy Strategy, cookies *CookieCodec, bcryptCost int) *Handler {
	return &Handler{
		users:      users,
		sessions:   sessions,
		strategy:   strategy,
		cookies:    cookies,
		bcryptCost: bcryptCost,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup は POST /signup のハンドラーです。
// 重複メールアドレスは通常の失敗レスポンスとして返します（例外扱いしない）。
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "email and password are required",
			"success": false,
		})
		return
	}

	ctx := c.Request.Context()

	// 事前チェック。同時登録の競合はストアの一意性制約が裁定する
	_, err := h.users.FindByEmail(ctx, req.Email)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Email already registered",
			"success": false,
		})
		return
	}
	if !errors.Is(err, user.ErrNotFound) {
		log.Printf("signup: failed to check existing user: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"message": "Error registering user",
			"success": false,
		})
		return
	}

	hash, err := HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		log.Printf("signup: failed to hash password: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"message": "Error registering user",
			"success": false,
		})
		return
	}

	newUser := &user.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := h.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			// 事前チェック後に先を越されたケースも同じ失敗として扱う
			c.JSON(http.StatusOK, gin.H{
				"message": "Email already registered",
				"success": false,
			})
			return
		}
		log.Printf("signup: failed to create user: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"message": "Error registering user",
			"success": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"success": true,
	})
}

// Login は POST /login のハンドラーです。
// ユーザー不在とパスワード不一致は同一のメッセージで失敗させます。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "email and password are required",
			"success": false,
		})
		return
	}

	ctx := c.Request.Context()

	u, err := h.strategy.Verify(ctx, Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid email or password",
				"success": false,
			})
			return
		}
		log.Printf("login: verification failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error logging in",
			"success": false,
		})
		return
	}

	sess, err := h.sessions.Create(ctx, u.ID)
	if err != nil {
		log.Printf("login: failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error logging in",
			"success": false,
		})
		return
	}

	h.cookies.SetCookie(c, sess.Token)

	// PasswordHash は json:"-" のため user には含まれない
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    u,
		"success": true,
	})
}

// Logout は POST /logout のハンドラーです。RequireLogin の後段で動作します。
// セッション破棄の失敗は握りつぶさず、ログに残した上で失敗として返します。
func (h *Handler) Logout(c *gin.Context) {
	token := CurrentToken(c)

	h.cookies.ClearCookie(c)

	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
		log.Printf("logout: failed to destroy session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error terminating session",
			"success": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
		"success": true,
	})
}

// Me は GET /me のハンドラーです。認証済みユーザーを返します。
func (h *Handler) Me(c *gin.Context) {
	u := CurrentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Authentication required",
			"success": false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    u,
		"success": true,
	})
}
