package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/toeirei/quizmaster/internal/i18n"
	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/model"
)

// Envelope statuses.
const (
	statusOK           = "ok"
	statusBadRequest   = "bad_request"
	statusUnauthorized = "unauthorized"
	statusForbidden    = "forbidden"
	statusNotFound     = "not_found"
	statusConflict     = "conflict"
	statusInternal     = "internal_server_error"
)

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type adminResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type themesResponse struct {
	Themes []model.Theme `json:"themes"`
}

type questionsResponse struct {
	Questions []model.Question `json:"questions"`
}

func writeBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeData(w http.ResponseWriter, data any) {
	payload, err := json.Marshal(envelope{Status: statusOK, Data: data})
	if err != nil {
		writeError(w, http.StatusInternalServerError, statusInternal, "error.internal")
		return
	}
	writeBytes(w, http.StatusOK, payload)
}

func writeError(w http.ResponseWriter, code int, status, messageID string) {
	payload, _ := json.Marshal(envelope{Status: status, Message: i18n.T(messageID), Data: struct{}{}})
	writeBytes(w, code, payload)
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Anything
// outside it is a storage failure and is logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrAuthenticationFailed):
		writeError(w, http.StatusForbidden, statusForbidden, "error.forbidden")
	case errors.Is(err, model.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, statusUnauthorized, "error.unauthorized")
	case errors.Is(err, model.ErrDuplicateContent):
		writeError(w, http.StatusConflict, statusConflict, "error.conflict")
	case errors.Is(err, model.ErrUnknownReference):
		writeError(w, http.StatusNotFound, statusNotFound, "error.not_found")
	case errors.Is(err, model.ErrContentRuleViolation):
		writeError(w, http.StatusBadRequest, statusBadRequest, "error.content_rule")
	default:
		logging.Errorf("server: %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, statusInternal, "error.internal")
	}
}

func writeBadRequest(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, statusBadRequest, "error.bad_request")
}
