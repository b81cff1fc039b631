package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
	"mediaconsole/pkg/platform/httputil"
	"mediaconsole/pkg/requestcontext"
)

// Session is what the middleware needs from a validated token.
type Session struct {
	UserID    id.UserID
	PartnerID id.PartnerID
	TokenID   string
}

// TokenValidator validates a bearer token and returns its session.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Session, error)
}

// Option configures RequireAuth.
type Option func(*options)

type options struct {
	limitToPartner id.PartnerID
}

// WithPartnerLimit restricts the deployment to a single partner. Sessions for
// any other partner are refused with 403. Zero disables the restriction.
func WithPartnerLimit(partnerID id.PartnerID) Option {
	return func(o *options) { o.limitToPartner = partnerID }
}

// RequireAuth authenticates the bearer token and stores the session in the
// request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger, opts ...Option) func(http.Handler) http.Handler {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			session, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			if cfg.limitToPartner != 0 && session.PartnerID != cfg.limitToPartner {
				logger.WarnContext(ctx, "forbidden - partner not served by this deployment",
					"partner_id", session.PartnerID,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "Partner is not allowed on this deployment"))
				return
			}

			ctx = requestcontext.WithSession(ctx, session.UserID, session.PartnerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
