package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token errors.
var (
	ErrMalformedToken = errors.New("auth: malformed token")
	ErrExpiredToken   = errors.New("auth: token expired")
	ErrBadSignature   = errors.New("auth: bad token signature")
)

// Claims is the decoded content of a bearer token.
type Claims struct {
	Role string `json:"role,omitempty"`
	// LegacyID holds the subject for tokens that carry it as a numeric "id"
	// claim instead of "sub".
	LegacyID json.Number `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID returns the subject identifier, preferring "sub" over "id".
func (c *Claims) SubjectID() string {
	if c == nil {
		return ""
	}
	if c.Subject != "" {
		return c.Subject
	}
	return c.LegacyID.String()
}

// TokenCodec verifies and issues HS256 signed tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	leeway time.Duration
}

// CodecOption customises a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock overrides the clock used for expiry checks and issuance.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLeeway tolerates clock skew when checking time based claims.
func WithLeeway(d time.Duration) CodecOption {
	return func(c *TokenCodec) {
		c.leeway = d
	}
}

// NewTokenCodec constructs a codec bound to the signing secret.
func NewTokenCodec(secret []byte, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: signing secret must be provided")
	}
	c := &TokenCodec{secret: append([]byte(nil), secret...), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Decode verifies the signature and expiry of raw and returns its claims.
// It fails with ErrMalformedToken, ErrExpiredToken or ErrBadSignature.
func (c *TokenCodec) Decode(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
		jwt.WithLeeway(c.leeway),
	)
	claims := &Claims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, ErrBadSignature
	}
	if claims.SubjectID() == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}
	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}

// Issue signs a token for subject. Used by operator tooling and tests; end
// user login lives outside this service.
func (c *TokenCodec) Issue(subject string, role Role, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("auth: subject required")
	}
	now := c.now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}
