// Package auth issues and validates the RS256 access tokens that identify
// callers. The token carries the employee id, username and role; everything
// downstream reads those from the request session.
package auth

import (
	"crypto/rsa"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/session"
)

// Claims represents JWT token claims
type Claims struct {
	EmployeeID int64  `json:"uid"`
	UserName   string `json:"username"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type TokenGenerator struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
}

func NewTokenGenerator(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, accessTTL time.Duration) *TokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &TokenGenerator{
		privateKey: privateKey,
		publicKey:  publicKey,
		accessTTL:  accessTTL,
	}
}

func (g *TokenGenerator) GenerateAccessToken(sess *session.Session) (string, time.Time, error) {
	expiresAt := time.Now().Add(g.accessTTL)

	claims := &Claims{
		EmployeeID: sess.UserID,
		UserName:   sess.UserName,
		Role:       sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(sess.UserID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(g.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (g *TokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, internal.ErrInvalidToken
		}
		return g.publicKey, nil
	})
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
