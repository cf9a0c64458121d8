package jwt

import "time"

type TokenManager interface {
	GenerateTokenPair(userID, email, role string, accessTTL time.Duration) (string, string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetTokenExpiry(tokenType string) time.Duration
}
