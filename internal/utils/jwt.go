package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims are the identity claims issued by the external identity
// provider. The service only consumes id, name and avatar; credential
// verification happens upstream.
type UserClaims struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar,omitempty"`
	jwt.RegisteredClaims
}

// ValidateUserToken validates a JWT token and returns the identity claims
func ValidateUserToken(tokenString string, secret []byte) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || claims.UserID == "" {
		return nil, errors.New("token missing user identity")
	}
	return claims, nil
}

// ExtractTokenFromHeader extracts the token from the Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}
	return authHeader[7:], nil
}
