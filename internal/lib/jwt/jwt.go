package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const userIDClaim = "userId"

var ErrInvalidToken = errors.New("invalid token")

// NewToken signs a session token carrying only the user id. A zero ttl
// produces a token without exp.
func NewToken(userID int64, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		userIDClaim: userID,
		"iat":       now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwt.NewToken: %w", err)
	}

	return tokenString, nil
}

// ParseUserID verifies the signature and expiry and returns the userId claim.
// Expiry is checked against now, or time.Now when now is nil.
func ParseUserID(tokenStr string, secret string, now func() time.Time) (int64, error) {
	if now == nil {
		now = time.Now
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(now))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	userID, ok := claims[userIDClaim].(float64)
	if !ok || userID <= 0 {
		return 0, fmt.Errorf("%w: invalid %s claim", ErrInvalidToken, userIDClaim)
	}

	return int64(userID), nil
}
