package utils

import (
	"fmt"

	"github.com/dojodesk/dojodesk/internal/types"
	"github.com/gin-gonic/gin"
)

// GetCurrentAdminID returns the admin id the guard attached to the
// request context.
func GetCurrentAdminID(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get(types.ContextAdminKey)

	if !exists {
		return 0, fmt.Errorf("admin not authenticated")
	}

	adminID, ok := value.(uint)

	if !ok {
		return 0, fmt.Errorf("invalid admin id type in context")
	}

	return adminID, nil
}
