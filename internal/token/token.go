package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, unexpected algorithm, or passed expiry. Callers get
// no finer detail, so clients cannot distinguish the causes.
var ErrInvalidToken = errors.New("token: invalid or expired")

// Service issues and verifies HS256 bearer tokens. The secret and TTL
// are fixed at construction; there is no revocation, a token stays
// valid until its expiry.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: secret not configured")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token whose subject is the user id, expiring after the
// configured TTL.
func (s *Service) Issue(userID int64) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
func (s *Service) Verify(tokenStr string) (int64, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
