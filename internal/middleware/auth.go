package middleware

import (
	"net/http"
	"strings"

	"github.com/eventease-dev/eventease/internal/auth"
	"github.com/eventease-dev/eventease/internal/authz"
	"github.com/eventease-dev/eventease/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u AuthenticatedUser) Identity() authz.Identity {
	return authz.Identity{ID: u.ID, Role: u.Role}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// RequireAuth rejects requests that do not resolve to an account.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		user, ok := auth.ResolveUser(token)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		ctx.Next()
	}
}

// OptionalAuth resolves a credential when one is present but lets anonymous
// requests through. Handlers downgrade what they expose accordingly.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, ok := bearerToken(ctx); ok {
			if user, resolved := auth.ResolveUser(token); resolved {
				ctx.Set(types.ContextUserKey, AuthenticatedUser{
					ID:    user.ID,
					Name:  user.Name,
					Email: user.Email,
					Role:  user.Role,
				})
			}
		}

		ctx.Next()
	}
}
