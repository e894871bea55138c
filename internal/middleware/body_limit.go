package middleware

import (
	"net/http"

	"skypath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// BodyLimit 限制请求体大小，超出后读取 body 会返回 *http.MaxBytesError
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			util.BadRequest(c, util.ErrVideoTooLarge.Error())
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
