package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/toeirei/quizmaster/internal/db"
	"github.com/toeirei/quizmaster/internal/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := db.NewStoreFromDSN(db.TypeSQLite, "file:quiz_"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("NewStoreFromDSN: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewService(s)
}

func TestHistoryScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	history, err := svc.CreateTheme(ctx, "History")
	if err != nil {
		t.Fatalf("CreateTheme: %v", err)
	}
	answers := []model.Answer{{Title: "1492", IsCorrect: true}, {Title: "1500"}, {Title: "1600"}}
	q, err := svc.CreateQuestion(ctx, "Q1", history.ID, answers)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if q.ID == 0 || q.ThemeID != history.ID || len(q.Answers) != 3 {
		t.Fatalf("unexpected question: %+v", q)
	}

	listed, err := svc.ListQuestions(ctx, &history.ID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Q1" {
		t.Fatalf("unexpected listing: %+v", listed)
	}
	for i, want := range answers {
		got := listed[0].Answers[i]
		if got.Title != want.Title || got.IsCorrect != want.IsCorrect {
			t.Fatalf("answer %d: got %+v, want %+v", i, got, want)
		}
	}
	if c, ok := listed[0].CorrectAnswer(); !ok || c.Title != "1492" {
		t.Fatalf("unexpected correct answer: %+v", c)
	}

	if _, err := svc.CreateQuestion(ctx, "Q1", history.ID, answers); !errors.Is(err, model.ErrDuplicateContent) {
		t.Fatalf("expected ErrDuplicateContent for a repeated title, got %v", err)
	}
	all, _ := svc.ListQuestions(ctx, nil)
	if len(all) != 1 {
		t.Fatalf("a failed create must not leave rows, got %d questions", len(all))
	}
}

func TestInvalidAnswersLeaveNoTrace(t *testing.T) {
	cases := []struct {
		name    string
		answers []model.Answer
	}{
		{"two correct", []model.Answer{{Title: "A", IsCorrect: true}, {Title: "B", IsCorrect: true}}},
		{"none correct", []model.Answer{{Title: "A"}, {Title: "B"}, {Title: "C"}}},
		{"single answer", []model.Answer{{Title: "A", IsCorrect: true}}},
		{"no answers", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()
			th, err := svc.CreateTheme(ctx, "History")
			if err != nil {
				t.Fatalf("CreateTheme: %v", err)
			}

			_, err = svc.CreateQuestion(ctx, "Q2", th.ID, c.answers)
			if !errors.Is(err, model.ErrContentRuleViolation) {
				t.Fatalf("expected ErrContentRuleViolation, got %v", err)
			}
			if q, _ := svc.QuestionByTitle(ctx, "Q2"); q != nil {
				t.Fatalf("invalid question was stored: %+v", q)
			}
			qs, _ := svc.ListQuestions(ctx, nil)
			if len(qs) != 0 {
				t.Fatalf("expected no questions, got %d", len(qs))
			}
			themes, _ := svc.ListThemes(ctx)
			if len(themes) != 1 {
				t.Fatalf("expected only the seeded theme, got %+v", themes)
			}
		})
	}
}

func TestUnknownThemeAndDuplicateTheme(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	valid := []model.Answer{{Title: "A", IsCorrect: true}, {Title: "B"}}
	if _, err := svc.CreateQuestion(ctx, "Orphan", 999, valid); !errors.Is(err, model.ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
	if q, _ := svc.QuestionByTitle(ctx, "Orphan"); q != nil {
		t.Fatalf("orphan question was stored")
	}

	first, err := svc.CreateTheme(ctx, "Science")
	if err != nil {
		t.Fatalf("CreateTheme: %v", err)
	}
	if _, err := svc.CreateTheme(ctx, "Science"); !errors.Is(err, model.ErrDuplicateContent) {
		t.Fatalf("expected ErrDuplicateContent, got %v", err)
	}
	themes, _ := svc.ListThemes(ctx)
	if len(themes) != 1 || themes[0] != first {
		t.Fatalf("first theme should remain alone, got %+v", themes)
	}
	byID, _ := svc.ThemeByID(ctx, first.ID)
	byTitle, _ := svc.ThemeByTitle(ctx, "Science")
	if byID == nil || byTitle == nil || *byID != *byTitle {
		t.Fatalf("theme lookups disagree: %+v %+v", byID, byTitle)
	}

	missing := int64(12345)
	qs, err := svc.ListQuestions(ctx, &missing)
	if err != nil || len(qs) != 0 {
		t.Fatalf("expected empty list for unknown theme, got %v (%v)", qs, err)
	}
}
