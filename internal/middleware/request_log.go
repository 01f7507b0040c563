package middleware

import (
	"bytes"
	"io"
	"log"
	"strings"

	"github.com/dojodesk/dojodesk/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags each request with an id and logs method, path and
// body. Bodies on /users routes carry credentials and are never logged.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := uuid.NewString()
		ctx.Set(types.ContextRequestIDKey, requestID)

		if strings.HasPrefix(ctx.Request.URL.Path, "/users") || ctx.Request.Body == nil {
			log.Printf("[%s] %s %s", requestID, ctx.Request.Method, ctx.Request.URL.Path)
			ctx.Next()
			return
		}

		body, err := io.ReadAll(ctx.Request.Body)

		if err != nil {
			log.Printf("[%s] %s %s - failed to read body: %v", requestID, ctx.Request.Method, ctx.Request.URL.Path, err)
			ctx.Next()
			return
		}

		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		log.Printf("[%s] %s %s - Body: %s", requestID, ctx.Request.Method, ctx.Request.URL.Path, body)
		ctx.Next()
	}
}
