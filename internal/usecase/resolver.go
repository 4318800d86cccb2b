package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"rental-assistant/internal/domain"
)

// maxSessionIDLength bounds client-supplied anonymous session tokens.
const maxSessionIDLength = 128

// ErrInvalidProof is returned by a TokenVerifier for a proof that is
// malformed, expired, badly signed or carries an unknown role.
var ErrInvalidProof = errors.New("usecase: invalid authentication proof")

// Claims is what a verified authentication proof establishes.
type Claims struct {
	UserID string
	Role   domain.CallerRole
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Credentials are the raw identity inputs of one request.
type Credentials struct {
	AuthToken string
	SessionID string
}

// Session is a resolved caller.
type Session struct {
	Identity domain.Identity
	Role     domain.CallerRole
}

type SessionResolver struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewSessionResolver returns a resolver. A nil verifier means authentication
// proofs are never accepted and every caller is anonymous.
func NewSessionResolver(v TokenVerifier, logger *slog.Logger) *SessionResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionResolver{verifier: v, logger: logger}
}

// Resolve maps credentials to exactly one identity. A valid proof wins over a
// session id. An invalid proof with a session id falls back to the anonymous
// identity; an invalid proof alone is IDENTITY_REQUIRED.
func (r *SessionResolver) Resolve(ctx context.Context, c Credentials) (Session, error) {
	token := strings.TrimSpace(c.AuthToken)
	if token != "" && r.verifier != nil {
		claims, err := r.verifier.Verify(ctx, token)
		switch {
		case err == nil:
			return Session{
				Identity: domain.AuthenticatedIdentity{UserID: claims.UserID},
				Role:     claims.Role,
			}, nil
		case errors.Is(err, ErrInvalidProof):
			r.logger.InfoContext(ctx, "authentication proof rejected", "err", err)
		default:
			return Session{}, newError(ErrorInternal, "proof_verification_error", err)
		}
	}

	sessionID := strings.TrimSpace(c.SessionID)
	if sessionID == "" {
		return Session{}, newError(ErrorIdentityRequired, "no_identity", nil)
	}
	if len(sessionID) > maxSessionIDLength {
		return Session{}, newError(ErrorInvalidInput, "session_id_too_long", nil)
	}
	return Session{
		Identity: domain.AnonymousIdentity{SessionID: sessionID},
		Role:     domain.RoleGuest,
	}, nil
}
