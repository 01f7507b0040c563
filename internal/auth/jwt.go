package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL bounds how long an issued role stays trusted; roles are
// never re-checked against the store after issuance.
const TokenTTL = time.Hour

var jwtSecret string

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

// GenerateToken signs a token carrying the subject id and role. Fails
// closed when the secret was never initialized.
func GenerateToken(subjectID uint, role string) (string, error) {
	if jwtSecret == "" {
		return "", fmt.Errorf("JWT secret is not initialized")
	}

	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyToken validates the signature and expiry and returns the
// embedded subject id and role.
func VerifyToken(tokenString string) (uint, string, error) {
	if jwtSecret == "" {
		return 0, "", fmt.Errorf("JWT secret is not initialized")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return 0, "", fmt.Errorf("invalid token claims")
	}

	subjectFloat, ok := claims["sub"].(float64)

	if !ok {
		return 0, "", fmt.Errorf("invalid subject in token claims")
	}

	role, ok := claims["role"].(string)

	if !ok {
		return 0, "", fmt.Errorf("invalid role in token claims")
	}

	return uint(subjectFloat), role, nil
}
