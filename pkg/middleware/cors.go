package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowAnyOrigin は全オリジンを許可することを表すワイルドカード。
const AllowAnyOrigin = "*"

// CORS はクロスオリジンリクエストを許可するGinミドルウェアを返す。
// allowedOriginsに "*" が含まれる場合は全オリジンを許可し、
// それ以外は一致したオリジンのみをエコーバックする。
// OPTIONS（プリフライト）はボディを読まずに200で終了する。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAny := false
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == AllowAnyOrigin {
			allowAny = true
		}
		originsSet[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAny {
			c.Header("Access-Control-Allow-Origin", AllowAnyOrigin)
		} else if _, ok := originsSet[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Content-Type", "application/json")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
