package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrAlgorithmUnsupported = errors.New("tokens: algorithm not implemented")
	ErrMalformed            = errors.New("tokens: malformed token")
	ErrNotYetValid          = errors.New("tokens: token not active yet")
	ErrExpired              = errors.New("tokens: token expired")
	ErrIssuedAt             = errors.New("tokens: issued-at in the future")
	ErrSignatureMismatch    = errors.New("tokens: signature mismatch")
	ErrInvalid              = errors.New("tokens: invalid token")
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrAlgorithmUnsupported, "JWT algorithm is not implemented"},
	{ErrMalformed, "Invalid JWT token"},
	{ErrNotYetValid, "JWT token is not active yet (nbf claim)"},
	{ErrExpired, "JWT token has expired"},
	{ErrIssuedAt, "Invalid issued-at (iat) claim in JWT token"},
	{ErrSignatureMismatch, "JWT token signature does not match"},
}

// Codec verifies and decodes session tokens signed with a shared secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

type Option func(*Codec)

func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret []byte, opts ...Option) *Codec {
	c := &Codec{
		secret: secret,
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode reads the claims without checking the signature or timestamps.
// Only use it on tokens that came from a trusted place.
func (c *Codec) Decode(raw string) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, ErrMalformed
	}
	return &claims, nil
}

// Verify checks structure, algorithm, nbf, exp and iat, and then the
// signature. Timestamp failures win over a bad signature.
func (c *Codec) Verify(raw string) (*Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(raw, &claims, c.keyFunc)
	if err != nil && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return nil, classify(err)
	}

	validator := jwt.NewValidator(jwt.WithIssuedAt(), jwt.WithTimeFunc(c.now))
	if verr := validator.Validate(&claims); verr != nil {
		return nil, classify(verr)
	}

	if err != nil {
		return nil, ErrSignatureMismatch
	}
	return &claims, nil
}

// Sign is used by tests and local tooling; production tokens come from
// the auth gateway.
func (c *Codec) Sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	if t.Method.Alg() != c.method.Alg() {
		return nil, ErrAlgorithmUnsupported
	}
	return c.secret, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrAlgorithmUnsupported):
		return ErrAlgorithmUnsupported
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// alg header names a method the library does not know
		return ErrAlgorithmUnsupported
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrIssuedAt
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureMismatch
	default:
		return ErrInvalid
	}
}

// Reason is the client facing text for a codec failure.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "Invalid token"
}
