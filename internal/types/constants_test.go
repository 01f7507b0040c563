package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedOrigins_Defaults(t *testing.T) {
	t.Setenv("CORS_ORIGIN", "")

	origins := AllowedOrigins()

	assert.Equal(t, defaultOrigins, origins)
}

// Origins supplied through the environment must be honored even when
// the env was populated after package init (godotenv loads in main).
func TestAllowedOrigins_FromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGIN", "https://app.example.com")

	origins := AllowedOrigins()

	assert.Contains(t, origins, "https://app.example.com")
	assert.Contains(t, origins, "http://localhost:5173")
}

func TestAllowedOrigins_CommaSeparated(t *testing.T) {
	t.Setenv("CORS_ORIGIN", "https://app.example.com, https://staging.example.com ,")

	origins := AllowedOrigins()

	assert.Contains(t, origins, "https://app.example.com")
	assert.Contains(t, origins, "https://staging.example.com")
	assert.NotContains(t, origins, "")
}
