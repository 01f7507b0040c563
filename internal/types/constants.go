package types

import (
	"os"
	"strings"
)

const (
	ContextAdminKey     = "admin_id"
	ContextRequestIDKey = "request_id"

	RoleMember = "member"
	RoleAdmin  = "admin"

	DefaultBeltLevel = "white"
)

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// AllowedOrigins reads CORS_ORIGIN at call time, so it must run after
// the environment has been loaded, not at package init.
func AllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if corsOrigin := os.Getenv("CORS_ORIGIN"); corsOrigin != "" {
		for _, origin := range strings.Split(corsOrigin, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
