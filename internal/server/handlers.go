package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/toeirei/quizmaster/internal/model"
	"github.com/toeirei/quizmaster/internal/security"
	"github.com/toeirei/quizmaster/internal/session"
)

const maxBodyBytes = 1 << 20

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addThemeRequest struct {
	Title string `json:"title"`
}

type answerRequest struct {
	Title     string `json:"title"`
	IsCorrect bool   `json:"is_correct"`
}

type addQuestionRequest struct {
	Title   string          `json:"title"`
	ThemeID *int64          `json:"theme_id"`
	Answers []answerRequest `json:"answers"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeBadRequest(w)
		return
	}
	password := security.FromString(req.Password)
	defer password.Zero()

	a, err := s.cfg.Admins.Login(r.Context(), req.Email, password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	value, err := s.cfg.Codec.Encode(session.ForAdmin(a))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   !s.cfg.InsecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeData(w, adminResponse{ID: a.ID, Email: a.Email})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	a, err := s.gate.Require(session.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, adminResponse{ID: a.ID, Email: a.Email})
}

func (s *Server) handleAddTheme(w http.ResponseWriter, r *http.Request, _ model.Admin) {
	var req addThemeRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Title) == "" {
		writeBadRequest(w)
		return
	}
	t, err := s.cfg.Quiz.CreateTheme(r.Context(), req.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, t)
}

func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request, _ model.Admin) {
	themes, err := s.cfg.Quiz.ListThemes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, themesResponse{Themes: themes})
}

func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request, _ model.Admin) {
	var req addQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Title) == "" || req.ThemeID == nil {
		writeBadRequest(w)
		return
	}
	answers := make([]model.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, model.Answer{Title: a.Title, IsCorrect: a.IsCorrect})
	}
	q, err := s.cfg.Quiz.CreateQuestion(r.Context(), req.Title, *req.ThemeID, answers)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, q)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request, _ model.Admin) {
	var themeID *int64
	if raw := r.URL.Query().Get("theme_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeBadRequest(w)
			return
		}
		themeID = &id
	}
	qs, err := s.cfg.Quiz.ListQuestions(r.Context(), themeID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, questionsResponse{Questions: qs})
}
