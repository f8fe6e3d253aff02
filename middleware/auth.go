package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tygam/khaosat-server/models"
	"github.com/tygam/khaosat-server/repository"
	"github.com/tygam/khaosat-server/utils"
)

const CtxPrincipal = "principal"

// GetPrincipal lấy người đang đăng nhập ra khỏi context của request.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// AuthJWT kiểm tra Authorization: Bearer <token>, validate JWT phiên
// và inject Principal vào context. Không có phiên hợp lệ → 401, client quay về login.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header", "target": "/login"})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifySessionToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token", "target": "/login"})
			return
		}

		c.Set(CtxPrincipal, models.Principal{
			Email:       claims.Email,
			DisplayName: claims.Name,
		})

		c.Next()
	}
}

// RequireAdmin chặn các route chỉ dành cho admin. Tra bảng admins MỖI request
// (quyền có thể bị thu hồi giữa hai phiên, không tin role cũ trong token hay cache).
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "target": "/login"})
			return
		}

		isAdmin, err := repository.Admins.IsAdmin(p.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Không kiểm tra được quyền: " + err.Error()})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden", "target": "/survey"})
			return
		}
		c.Next()
	}
}
