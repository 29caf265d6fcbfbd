package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard-dev/taskboard/internal/auth"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/types"
)

type AuthenticatedUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// extractToken prefers the cookie set at login and falls back to a Bearer
// header for non-browser clients.
func extractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token claims"})
			return
		}

		user, err := models.GetUserByID(int64(userIDFloat))

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		ctx.Next()
	}
}
