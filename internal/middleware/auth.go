package middleware

import (
	"strings"

	"skypath_backend/internal/model"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgTokenRequired = "Access token required"
	msgInvalidToken  = "Invalid token"
	msgAdminRequired = "Admin access required"
)

// bearerToken 只接受 "Bearer <token>" 形式的 Authorization 头
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthMiddleware 校验令牌并把 Claims 写入上下文
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			util.Unauthorized(c, msgTokenRequired)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.FromContext(c).Debug("JWT rejected", zap.Error(err))
			util.Forbidden(c, msgInvalidToken)
			c.Abort()
			return
		}

		c.Set(util.ClaimsContextKey, claims)
		c.Next()
	}
}

// requireRole 须在 AuthMiddleware 之后使用
func requireRole(allow func(model.UserRole) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c, msgTokenRequired)
			c.Abort()
			return
		}
		if !allow(user.Role) {
			util.Forbidden(c, msgAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Admin admin 与 master 可访问
func Admin() gin.HandlerFunc {
	return requireRole(model.UserRole.IsPrivileged)
}
