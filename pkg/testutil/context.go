package testutil

import (
	"net/http"
	"time"

	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/requestcontext"
)

// WithSession simulates the auth middleware for an authenticated request.
func WithSession(req *http.Request, userID id.UserID, partnerID id.PartnerID) *http.Request {
	return req.WithContext(requestcontext.WithSession(req.Context(), userID, partnerID))
}

// WithTime pins the request-scoped clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
