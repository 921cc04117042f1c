// Package middleware は横断的なHTTPミドルウェアを提供します。
package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-forge/internal/apperr"
	"github.com/yourusername/auth-forge/internal/logger"
)

// ErrorResponder はハンドラーから集約されたエラーを一箇所で整形します。
// 種別を持つエラーはそのステータスとメッセージを、それ以外は500として扱います。
// 診断情報は非本番モードのみレスポンスに含め、サーバーログには常に記録します。
func ErrorResponder(log *logger.Logger, exposeDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		appErr := apperr.From(last.Err)
		status := appErr.Kind.Status()

		log.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"client_ip", c.ClientIP(),
			"error", last.Err.Error(),
		)

		body := gin.H{
			"success": false,
			"message": appErr.Message,
		}
		if exposeDetail {
			body["stack"] = last.Err.Error()
		}

		c.JSON(status, body)
	}
}

// NotFound は未定義ルートに対するハンドラーを返します。
// 要求されたメソッドとパスをレスポンスに含めます。
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperr.NotFound(fmt.Sprintf(
			"Route %s %s not found", c.Request.Method, c.Request.URL.Path,
		)))
	}
}
