// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package quiz owns creation and listing of themes, questions and answers.
package quiz // import "github.com/toeirei/quizmaster/internal/quiz"

import (
	"context"
	"fmt"

	"github.com/toeirei/quizmaster/internal/db"
	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/model"
)

// Store is the slice of db.Store the content service needs.
type Store interface {
	db.QuizStore
	InTx(ctx context.Context, fn func(tx db.Store) error) error
}

// Service is the only writer of themes, questions and answers.
type Service struct {
	store Store
}

// NewService returns a Service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// translate turns a tagged storage outcome into the content error taxonomy.
func translate(op string, err error) error {
	switch db.OutcomeOf(err) {
	case db.OutcomeOK:
		return nil
	case db.OutcomeUniqueViolation:
		return model.ErrDuplicateContent
	case db.OutcomeForeignKeyViolation:
		return model.ErrUnknownReference
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// CreateTheme stores a new theme.
func (s *Service) CreateTheme(ctx context.Context, title string) (model.Theme, error) {
	t, err := s.store.InsertTheme(ctx, title)
	if err != nil {
		return model.Theme{}, translate("create theme", err)
	}
	logging.Debugf("quiz: created theme %d %q", t.ID, t.Title)
	return t, nil
}

// ListThemes returns every theme ordered by id.
func (s *Service) ListThemes(ctx context.Context) ([]model.Theme, error) {
	themes, err := s.store.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return themes, nil
}

// ThemeByID returns the theme with id, or nil.
func (s *Service) ThemeByID(ctx context.Context, id int64) (*model.Theme, error) {
	t, err := s.store.FindThemeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find theme: %w", err)
	}
	return t, nil
}

// ThemeByTitle returns the theme titled title, or nil.
func (s *Service) ThemeByTitle(ctx context.Context, title string) (*model.Theme, error) {
	t, err := s.store.FindThemeByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("find theme: %w", err)
	}
	return t, nil
}

// CreateQuestion validates answers and stores the question with its answers
// in one transaction. Nothing is written when validation fails.
func (s *Service) CreateQuestion(ctx context.Context, title string, themeID int64, answers []model.Answer) (model.Question, error) {
	if err := CheckAnswers(answers); err != nil {
		return model.Question{}, err
	}

	var q model.Question
	err := s.store.InTx(ctx, func(tx db.Store) error {
		stored, err := tx.InsertQuestion(ctx, title, themeID)
		if err != nil {
			return err
		}
		stored.Answers, err = tx.InsertAnswers(ctx, stored.ID, answers)
		if err != nil {
			return err
		}
		q = stored
		return nil
	})
	if err != nil {
		return model.Question{}, translate("create question", err)
	}
	logging.Debugf("quiz: created question %d %q in theme %d", q.ID, q.Title, q.ThemeID)
	return q, nil
}

// QuestionByTitle returns the question titled title with its answers, or nil.
func (s *Service) QuestionByTitle(ctx context.Context, title string) (*model.Question, error) {
	q, err := s.store.FindQuestionByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	return q, nil
}

// ListQuestions returns all questions, or only those of themeID when set.
// An unknown themeID yields an empty list.
func (s *Service) ListQuestions(ctx context.Context, themeID *int64) ([]model.Question, error) {
	qs, err := s.store.ListQuestions(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return qs, nil
}
