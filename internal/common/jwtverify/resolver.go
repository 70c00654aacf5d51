package jwtverify

import (
	"context"
	"net/http"

	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
	commonhttp "github.com/AlibekovAA/interview-board/internal/common/http"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
)

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Resolver turns a request into the session of the user it belongs to.
type Resolver struct {
	secret  []byte
	revoked RevocationChecker
	log     *logger.Logger
}

func NewResolver(secret string, revoked RevocationChecker, log *logger.Logger) *Resolver {
	return &Resolver{
		secret:  []byte(secret),
		revoked: revoked,
		log:     log,
	}
}

// Resolve returns commonerrors.ErrUnauthorized when the request carries no
// usable session. Failing to consult the revocation list is an internal error.
func (res *Resolver) Resolve(r *http.Request) (Claims, error) {
	ctx := r.Context()

	tokenString, ok := ExtractToken(r)
	if !ok {
		return Claims{}, commonerrors.ErrUnauthorized
	}

	claims, err := ParseToken(tokenString, res.secret)
	if err != nil {
		res.log.WithFields(ctx, logger.Fields{
			"path":   r.URL.Path,
			"action": "session_invalid_token",
		}).Debugf("session rejected: %v", err)
		return Claims{}, commonerrors.ErrUnauthorized.WithCause(err)
	}

	if res.revoked != nil {
		revoked, err := res.revoked.IsRevoked(ctx, claims.JTI)
		if err != nil {
			return Claims{}, commonerrors.ErrInternalError.WithCause(err)
		}
		if revoked {
			res.log.WithFields(ctx, logger.Fields{
				"user_id": claims.UserID,
				"action":  "session_revoked_token",
			}).Warn("session rejected: token revoked")
			return Claims{}, commonerrors.ErrUnauthorized
		}
	}

	return claims, nil
}

// Middleware rejects requests without a session and stores the claims in the
// request context for downstream handlers.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := res.Resolve(r)
		if err != nil {
			commonhttp.HandleError(w, r, err, res.log)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// ResolveUserID is Resolve for callers that only need the user id.
func (res *Resolver) ResolveUserID(r *http.Request) (string, error) {
	claims, err := res.Resolve(r)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
