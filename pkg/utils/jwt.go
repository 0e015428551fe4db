package utils

import (
	"time"

	"marketplace_api/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by both access and refresh tokens. SessionID ties a token
// to a server-side session row so revocation is possible.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a short-lived access token.
func GenerateAccessToken(userID, role, sessionID string) (string, *time.Time, error) {
	expire := time.Now().Add(time.Duration(config.GlobalConfig.JWT.AccessExpire) * time.Minute)
	return generateToken(userID, role, sessionID, expire, config.GlobalConfig.JWT.AccessSecret)
}

// GenerateRefreshToken issues a long-lived refresh token.
func GenerateRefreshToken(userID, role, sessionID string) (string, *time.Time, error) {
	expire := time.Now().Add(time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Hour)
	return generateToken(userID, role, sessionID, expire, config.GlobalConfig.JWT.RefreshSecret)
}

func generateToken(userID, role, sessionID string, expireTime time.Time, secret string) (string, *time.Time, error) {
	claims := Claims{
		UserID:    userID,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireTime),
			Issuer:    "marketplace-api",
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tokenClaims.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return token, &expireTime, nil
}

// ParseAccessToken validates an access token and returns its claims.
func ParseAccessToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.GlobalConfig.JWT.AccessSecret)
}

// ParseRefreshToken validates a refresh token and returns its claims.
func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.GlobalConfig.JWT.RefreshSecret)
}

func parseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
