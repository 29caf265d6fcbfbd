package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/middleware"
	"github.com/taskboard-dev/taskboard/internal/types"
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

func GetCurrentUserID(ctx *gin.Context) (int64, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
