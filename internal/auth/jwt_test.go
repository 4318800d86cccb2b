package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"rental-assistant/internal/domain"
	"rental-assistant/internal/usecase"
)

const testSecret = StaticSecret("test-secret")

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type failingSecret struct{}

func (failingSecret) Value(context.Context) (string, error) {
	return "", errors.New("ssm unavailable")
}

func newVerifier(t *testing.T, opts ...Option) *Verifier {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	v, err := NewVerifier(testSecret, opts...)
	require.NoError(t, err)
	return v
}

func signRaw(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestNewVerifier_NilSecret(t *testing.T) {
	_, err := NewVerifier(nil)
	require.Error(t, err)
}

func TestVerify_SignedRoundTrip(t *testing.T) {
	v := newVerifier(t)
	token, err := v.Sign(context.Background(), "user-1", domain.RoleLandlord, time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, usecase.Claims{UserID: "user-1", Role: domain.RoleLandlord}, claims)
}

func TestVerify_MissingRoleDefaultsToStudent(t *testing.T) {
	v := newVerifier(t)
	token := signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "user-2",
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
	})

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, claims.Role)
}

func TestVerify_RejectsInvalidProofs(t *testing.T) {
	valid := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour))}

	cases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: signRaw(t, jwt.SigningMethodHS256, []byte("other"), valid)},
		{name: "wrong algorithm", token: signRaw(t, jwt.SigningMethodHS512, []byte(testSecret), valid)},
		{name: "expired", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(-time.Hour)),
		})},
		{name: "no expiry", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "user-1"})},
		{name: "no subject", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		})},
		{name: "unknown role", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), tokenClaims{
			Role:             "superuser",
			RegisteredClaims: valid,
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newVerifier(t).Verify(context.Background(), tc.token)
			require.ErrorIs(t, err, usecase.ErrInvalidProof)
		})
	}
}

func TestVerify_Issuer(t *testing.T) {
	v := newVerifier(t, WithIssuer("rental-auth"))
	token := signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
	})
	_, err := v.Verify(context.Background(), token)
	require.ErrorIs(t, err, usecase.ErrInvalidProof)

	token, err = v.Sign(context.Background(), "user-1", domain.RoleAdmin, time.Minute)
	require.NoError(t, err)
	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestVerify_SecretFailureIsNotInvalidProof(t *testing.T) {
	v, err := NewVerifier(failingSecret{})
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "anything")
	require.Error(t, err)
	require.False(t, errors.Is(err, usecase.ErrInvalidProof))
	require.ErrorContains(t, err, "ssm unavailable")
}

func TestSign_Validation(t *testing.T) {
	v := newVerifier(t)
	_, err := v.Sign(context.Background(), " ", domain.RoleStudent, time.Hour)
	require.Error(t, err)
	_, err = v.Sign(context.Background(), "user-1", domain.RoleStudent, 0)
	require.Error(t, err)
}

func TestStaticSecret_Empty(t *testing.T) {
	_, err := StaticSecret("").Value(context.Background())
	require.Error(t, err)
}
