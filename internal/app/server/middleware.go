package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"francoggm/paygw-wallet/internal/app/auth"
	"francoggm/paygw-wallet/internal/lang"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	adminTokenHeader  = "X-Admin-Token"
	sessionCookieName = "MoodleSession"
)

// echoRequestID returns the id assigned by middleware.RequestID to the caller.
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(middleware.RequestIDHeader, middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("Request handled",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := s.strings.Match(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(lang.WithLanguage(r.Context(), tag)))
	})
}

// session resolves the caller from the session cookie or a bearer token.
// Unknown or expired tokens leave the request anonymous.
func (s *Server) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := s.sessions.UserID(r.Context(), token)
		if err != nil {
			s.logger.Debug("Ignoring session token", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	})
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// adminOnly refuses every request when no admin token is configured.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := s.cfg.Server.AdminToken
		given := r.Header.Get(adminTokenHeader)

		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(given)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
