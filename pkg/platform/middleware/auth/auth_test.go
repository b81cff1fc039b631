package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/requestcontext"
)

type stubValidator struct {
	session *Session
	err     error
}

func (v stubValidator) ValidateToken(string) (*Session, error) { return v.session, v.err }

type AuthMiddlewareSuite struct {
	suite.Suite
	logger  *slog.Logger
	session *Session
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.session = &Session{UserID: id.UserID(uuid.New()), PartnerID: 2063561, TokenID: "jti-1"}
}

func (s *AuthMiddlewareSuite) serve(v TokenValidator, header string, opts ...Option) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	h := RequireAuth(v, s.logger, opts...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusNoContent)
	}))
	r := httptest.NewRequest(http.MethodGet, "/entries", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w, seen
}

func (s *AuthMiddlewareSuite) errorCode(w *httptest.ResponseRecorder) string {
	var body map[string]string
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	return body["error"]
}

func (s *AuthMiddlewareSuite) TestMissingHeader() {
	w, next := s.serve(stubValidator{session: s.session}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("unauthorized", s.errorCode(w))
	s.Nil(next)
}

func (s *AuthMiddlewareSuite) TestWrongScheme() {
	w, _ := s.serve(stubValidator{session: s.session}, "Basic abc")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareSuite) TestInvalidToken() {
	w, next := s.serve(stubValidator{err: errors.New("bad signature")}, "Bearer t")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Nil(next)
}

func (s *AuthMiddlewareSuite) TestValidTokenPopulatesSession() {
	w, next := s.serve(stubValidator{session: s.session}, "Bearer t")
	s.Equal(http.StatusNoContent, w.Code)
	s.Require().NotNil(next)
	s.Equal(s.session.UserID, requestcontext.UserID(next.Context()))
	s.Equal(s.session.PartnerID, requestcontext.PartnerID(next.Context()))
}

func (s *AuthMiddlewareSuite) TestPartnerLimit() {
	s.Run("other partner is forbidden", func() {
		w, next := s.serve(stubValidator{session: s.session}, "Bearer t", WithPartnerLimit(99))
		s.Equal(http.StatusForbidden, w.Code)
		s.Equal("forbidden", s.errorCode(w))
		s.Nil(next)
	})
	s.Run("matching partner passes", func() {
		w, _ := s.serve(stubValidator{session: s.session}, "Bearer t", WithPartnerLimit(2063561))
		s.Equal(http.StatusNoContent, w.Code)
	})
}
