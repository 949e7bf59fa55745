package application

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	identity "lngtrade-cloud/internal/identity/domain"
)

// Claims are the session claims carried in issued tokens.
type Claims struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	CustomerID string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer constructs an issuer. A zero ttl defaults to 12 hours.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("identity: empty token secret")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenIssuer{secret: secret, ttl: ttl}, nil
}

// Issue signs a session token for the given user.
func (ti *TokenIssuer) Issue(user identity.User, now time.Time) (string, error) {
	claims := Claims{
		UserID:     user.ID,
		Role:       user.Role,
		CustomerID: user.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// Parse validates a session token and returns its claims.
func (ti *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("identity: empty token")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("identity: invalid signing method")
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("identity: invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("identity: missing user_id")
	}
	if _, ok := identity.NormalizeRole(claims.Role); !ok {
		return nil, errors.New("identity: invalid role")
	}
	return claims, nil
}
