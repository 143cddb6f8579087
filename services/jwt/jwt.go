package jwt

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
)

const (
	AccessTokenValidity  = time.Hour * 24
	RefreshTokenValidity = time.Hour * 24 * 7
)

// GenerateTokenPair returns a signed access and refresh token for the user.
func GenerateTokenPair(email string, secret string, isAdmin bool, userID uint, role string) (string, string, error) {
	accessClaims := jwt.MapClaims{
		"id":       userID,
		"email":    email,
		"role":     role,
		"is_admin": isAdmin,
		"type":     "access",
		"exp":      time.Now().Add(AccessTokenValidity).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshClaims := jwt.MapClaims{
		"id":   userID,
		"type": "refresh",
		"exp":  time.Now().Add(RefreshTokenValidity).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims parses the token, verifies its signature and expiry,
// and returns the claims.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
