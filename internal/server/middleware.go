package server

import (
	"net/http"
	"time"

	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/model"
	"github.com/toeirei/quizmaster/internal/session"
)

// withSession decodes the session cookie into the request's RequestContext.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rc session.RequestContext
		if c, err := r.Cookie(s.cfg.CookieName); err == nil {
			rc.Session = s.cfg.Codec.Decode(c.Value)
		}
		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), rc)))
	})
}

// requireAdmin rejects requests without a valid identity before h runs.
func (s *Server) requireAdmin(h func(http.ResponseWriter, *http.Request, model.Admin)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := s.gate.Require(session.FromContext(r.Context()))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		h(w, r, a)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.With("method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start)).Info("request")
	})
}
