// Package token はアカウントIDを埋め込んだ署名付きセッショントークンと、
// それを保持するクッキーの発行を提供します。
package token

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName はセッショントークンを保持するクッキー名です。
const CookieName = "token"

// TokenTTL はトークンとクッキー双方の有効期間です。
const TokenTTL = 15 * 24 * time.Hour

// Claims はセッショントークンのクレームです。
// 露出する情報を最小化するため、アカウントID以外のクレームは持ちません。
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID `json:"account_id"`
}

// Manager はトークンの発行・検証とクッキーへの書き込みを行います。
type Manager struct {
	secretKey []byte
	secure    bool // 本番モードでは Secure フラグを付与
}

// NewManager は Manager を作成します。
// 署名鍵の存在は設定読み込み時に検証済みであることを前提とします。
func NewManager(secretKey string, secure bool) *Manager {
	return &Manager{
		secretKey: []byte(secretKey),
		secure:    secure,
	}
}

// Issue はアカウントIDを埋め込んだ HS256 署名トークンを発行します。
func (m *Manager) Issue(accountID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse はトークンを検証してアカウントIDを取り出します。
func (m *Manager) Parse(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("session token is invalid")
	}
	return claims.AccountID, nil
}

// SetCookie はトークンをレスポンスのクッキーに書き込みます。
// スクリプトからは読めず、クロスサイトのサブリクエストには原則送信されません。
func (m *Manager) SetCookie(c *gin.Context, tokenString string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, tokenString, int(TokenTTL.Seconds()), "/", "", m.secure, true)
}

// ClearCookie はクッキーを空値・即時失効で上書きします。
// サーバー側にセッション表は無いため、発行済みトークン自体は期限まで有効なままです。
func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}
