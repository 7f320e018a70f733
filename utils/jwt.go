package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// AccessTokenExpiry bounds how long a login stays valid.
const AccessTokenExpiry = 24 * time.Hour

// GenerateAccessToken signs an HS256 token carrying the caller's identity
// and role. The role claim is what the write endpoints authorize against.
func GenerateAccessToken(userID int64, email, role string) (string, error) {
	jwtSecret := viper.GetString("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(AccessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
