package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/auth"
)

// TokenVerifier はアクセストークン検証の抽象です。
type TokenVerifier interface {
	Verify(tokenString string) (auth.Identity, error)
}

const identityContextKey = "identity"

// Authenticate は Bearer トークンを検証し、呼び出し元の Identity をコンテキストに設定します。
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "malformed authorization header"})
			return
		}

		identity, err := verifier.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// AdminOnly は管理者系ロール以外の呼び出しを拒否します。
// Authenticate の後段に配置してください。
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok || !identity.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access only"})
			return
		}
		c.Next()
	}
}

func identityFromContext(c *gin.Context) (auth.Identity, bool) {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}
