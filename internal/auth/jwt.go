package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Claim keys shared with the auth middleware, which copies them into
// the gin context under userID / userEmail / userRole.
const (
	claimUserID = "userID"
	claimEmail  = "email"
	claimRole   = "role"
)

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// GenerateToken signs an HS256 token carrying the user's identity and
// role. Carts and admin routes both authorize off these claims.
func GenerateToken(userID, email, role string) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue a token without a user id")
	}

	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		claimUserID: userID,
		claimEmail:  email,
		claimRole:   role,
		"iat":       now.Unix(),
		"exp":       now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a token, returning the identity
// claims it carries.
func ValidateToken(tokenString string) (userID, email, role string, err error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", "", "", err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", "", errors.New("invalid token claims")
	}

	userID, _ = claims[claimUserID].(string)
	email, _ = claims[claimEmail].(string)
	role, _ = claims[claimRole].(string)
	return userID, email, role, nil
}
