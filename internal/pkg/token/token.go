// Package token signs and verifies the bearer tokens handed out on signup
// and login. Tokens are HS256 JWTs whose payload is {id, name}.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

var ErrEmptySecret = errors.New("token: signing secret is empty")

// Claims is the token payload.
type Claims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Manager issues and parses tokens with a single secret.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Manager{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for id and name. A ttl <= 0 produces a token without
// an exp claim.
func (m *Manager) Issue(id primitive.ObjectID, name string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		ID:   id.Hex(),
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of raw and returns the caller.
// Every failure is reported as domain.ErrInvalidToken.
func (m *Manager) Parse(raw string) (domain.Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tkn.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{ID: id, Name: claims.Name}, nil
}
