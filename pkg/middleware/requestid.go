package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストIDを伝播するHTTPヘッダーキー。
const HeaderRequestID = "X-Request-ID"

// contextKeyRequestID はGinコンテキストにリクエストIDを格納するキー。
const contextKeyRequestID = "request_id"

// RequestID はリクエストごとに一意のIDを付与するGinミドルウェアを返す。
// 受信したX-Request-IDがUUIDとして妥当であればそれを引き継ぎ、
// そうでなければ新しく生成する。IDはレスポンスヘッダーにも設定する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID はGinコンテキストからリクエストIDを取得する。
// RequestIDミドルウェアが適用されていない場合は空文字を返す。
func GetRequestID(c *gin.Context) string {
	v, _ := c.Get(contextKeyRequestID)
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}
