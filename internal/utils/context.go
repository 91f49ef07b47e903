package utils

import (
	"fmt"
	"strconv"

	"github.com/eventease-dev/eventease/internal/authz"
	"github.com/eventease-dev/eventease/internal/middleware"
	"github.com/eventease-dev/eventease/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

// GetIdentity returns the caller's identity, anonymous when unauthenticated.
func GetIdentity(ctx *gin.Context) authz.Identity {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return authz.Anonymous
	}

	return user.Identity()
}

func GetEventID(ctx *gin.Context) (uint, error) {
	eventID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)

	if err != nil {
		return 0, fmt.Errorf("Invalid event ID")
	}

	return uint(eventID), nil
}
