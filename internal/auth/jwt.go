// Package auth verifies the bearer tokens that prove a signed-in caller.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rental-assistant/internal/domain"
	"rental-assistant/internal/usecase"
)

const defaultLeeway = 30 * time.Second

// SecretSource supplies the HS256 signing secret.
// *paramstore.Parameter satisfies this interface.
type SecretSource interface {
	Value(ctx context.Context) (string, error)
}

// StaticSecret is a SecretSource for a secret known at startup.
type StaticSecret string

func (s StaticSecret) Value(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", errors.New("auth: static secret is empty")
	}
	return string(s), nil
}

type tokenClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret SecretSource
	issuer string
	leeway time.Duration
	now    func() time.Time
}

type Option func(*Verifier)

// WithIssuer requires tokens to carry iss = issuer.
func WithIssuer(issuer string) Option {
	return func(v *Verifier) { v.issuer = issuer }
}

func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

func NewVerifier(secret SecretSource, opts ...Option) (*Verifier, error) {
	if secret == nil {
		return nil, errors.New("auth: secret source must not be nil")
	}
	v := &Verifier{secret: secret, leeway: defaultLeeway, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify checks signature, expiry and claims of token. Rejected tokens wrap
// usecase.ErrInvalidProof; failures to load the secret do not.
func (v *Verifier) Verify(ctx context.Context, token string) (usecase.Claims, error) {
	secret, err := v.secret.Value(ctx)
	if err != nil {
		return usecase.Claims{}, fmt.Errorf("auth: load signing secret: %w", err)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, parserOpts...)
	if err != nil {
		return usecase.Claims{}, fmt.Errorf("%w: %v", usecase.ErrInvalidProof, err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return usecase.Claims{}, usecase.ErrInvalidProof
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return usecase.Claims{}, fmt.Errorf("%w: missing subject", usecase.ErrInvalidProof)
	}
	role := domain.RoleStudent
	if claims.Role != "" {
		r, ok := domain.ParseCallerRole(claims.Role)
		if !ok {
			return usecase.Claims{}, fmt.Errorf("%w: unknown role %q", usecase.ErrInvalidProof, claims.Role)
		}
		role = r
	}
	return usecase.Claims{UserID: subject, Role: role}, nil
}

// Sign issues a token for userID that Verify accepts until ttl elapses.
func (v *Verifier) Sign(ctx context.Context, userID string, role domain.CallerRole, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("auth: user id is required")
	}
	if ttl <= 0 {
		return "", errors.New("auth: ttl must be positive")
	}
	secret, err := v.secret.Value(ctx)
	if err != nil {
		return "", fmt.Errorf("auth: load signing secret: %w", err)
	}
	now := v.now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}
