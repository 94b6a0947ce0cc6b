package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CanDlnd/pausetime/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// 所有写接口的请求体都是小 JSON（计划、设置），maxBytes 取 1MB 足够
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10002, "请求体过大")
				return
			}
		}
	}
}
