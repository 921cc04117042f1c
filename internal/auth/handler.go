package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-forge/internal/apperr"
	"github.com/yourusername/auth-forge/internal/token"
)

// Handler は認証エンドポイントのHTTPハンドラーです。
// 失敗はすべて c.Error 経由で中央のレスポンダーに集約します。
type Handler struct {
	service *Service
	tokens  *token.Manager
}

// NewHandler は Handler を作成します。
func NewHandler(service *Service, tokens *token.Manager) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register は POST /api/auth/register のハンドラーです。
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body"))
		return
	}

	created, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokenString, err := h.tokens.Issue(created.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.tokens.SetCookie(c, tokenString)

	// 作成したアカウントのフィールド（ハッシュを含む）は返却しない
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// Login は POST /api/auth/login のハンドラーです。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body"))
		return
	}

	a, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokenString, err := h.tokens.Issue(a.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.tokens.SetCookie(c, tokenString)

	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully"})
}

// Logout は POST /api/auth/logout のハンドラーです。
// 認証チェックは行わず常に成功します。クッキーが無くても副作用はありません。
func (h *Handler) Logout(c *gin.Context) {
	h.tokens.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Test は GET /api/auth/test の死活確認ハンドラーです。
func (h *Handler) Test(c *gin.Context) {
	c.String(http.StatusOK, "Auth service is running")
}
