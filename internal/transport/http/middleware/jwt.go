package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"microblog/internal/app"
	"microblog/internal/transport/http/response"
)

const (
	ContextUserIDKey  = "user_id"
	ContextEmailKey   = "email"
	ContextTokenIDKey = "token_id"
)

func AuthJWT(auth *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := auth.Verify(c.Request.Context(), token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid, expired or revoked token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextTokenIDKey, claims.ID)
		c.Next()
	}
}
