package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates the HS256 session tokens returned on a
// successful login
type TokenService struct {
	signingKey []byte
	expiration time.Duration
	issuer     string
}

// SessionClaims are the claims of an issued session token
type SessionClaims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
	Role    string `json:"role"`
}

// NewTokenService returns a TokenService using the given signing key
func NewTokenService(signingKey []byte, expiration time.Duration,
	issuer string) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		expiration: expiration,
		issuer:     issuer,
	}
}

// Issue returns a signed session token for the given user
func (ts *TokenService) Issue(userID uint64, address, role string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiration)),
		},
		Address: address,
		Role:    role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.signingKey)
}

// Validate parses and validates a session token, returning its claims
func (ts *TokenService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v",
					t.Header["alg"])
			}
			return ts.signingKey, nil
		}, jwt.WithIssuer(ts.issuer))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
