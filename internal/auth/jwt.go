package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("dev-secret-change-me")

const tokenTTL = 24 * time.Hour

// Init sets the signing secret. Called once from main with the configured value.
func Init(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// Claims is the JWT payload carried on every authenticated request.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given identity.
func GenerateToken(userID int, email, role string) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return tokenString, nil
}

// RefreshToken issues a fresh token for an expired one. A still-valid token
// is refused; the caller should keep using it.
func RefreshToken(tokenString string) (string, int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err == nil && token.Valid {
		return "", 0, fmt.Errorf("token is still valid, no refresh needed")
	}

	if token == nil {
		return "", 0, fmt.Errorf("parsing token: %w", err)
	}

	if !errors.Is(err, jwt.ErrTokenExpired) {
		return "", 0, fmt.Errorf("token cannot be refreshed: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", 0, fmt.Errorf("reading token claims")
	}

	newToken, err := GenerateToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return "", 0, fmt.Errorf("generating refreshed token: %w", err)
	}

	return newToken, int64(tokenTTL.Seconds()), nil
}

// ValidateToken parses and verifies a token, returning its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
