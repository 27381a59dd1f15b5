package utils

import (
	"errors"  // Sentinel errors
	"strconv" // Subject formatting
	"time"    // Token lifetime

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by every access token
type Claims struct {
	UserID               uint   `json:"user_id"` // Authenticated user
	Email                string `json:"email"`   // Email at issue time
	jwt.RegisteredClaims        // sub, exp, iat
}

// GenerateJWT signs an HS256 token for the user that expires after ttl
func GenerateJWT(userID uint, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates the signature, algorithm and expiry of tokenStr
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
