package quiz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/toeirei/quizmaster/internal/model"
)

const sampleCatalog = `themes:
  - title: History
    questions:
      - title: When did Columbus reach America?
        answers:
          - title: "1492"
            correct: true
          - title: "1500"
  - title: Science
    questions:
      - title: Water boils at sea level at
        answers:
          - title: 90C
          - title: 100C
            correct: true
`

func TestLoadAndImportCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(c.Themes) != 2 || len(c.Themes[1].Questions[0].Answers) != 2 || !c.Themes[1].Questions[0].Answers[1].Correct {
		t.Fatalf("unexpected catalog: %+v", c)
	}

	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.CreateTheme(ctx, "History"); err != nil {
		t.Fatalf("CreateTheme: %v", err)
	}

	res, err := svc.ImportCatalog(ctx, c)
	if err != nil {
		t.Fatalf("ImportCatalog: %v", err)
	}
	if res != (ImportResult{ThemesCreated: 1, QuestionsCreated: 2}) {
		t.Fatalf("unexpected first import result: %+v", res)
	}

	res, err = svc.ImportCatalog(ctx, c)
	if err != nil {
		t.Fatalf("second ImportCatalog: %v", err)
	}
	if res != (ImportResult{QuestionsSkipped: 2}) {
		t.Fatalf("unexpected second import result: %+v", res)
	}
}

func TestImportCatalogRejectsInvalidQuestion(t *testing.T) {
	svc := newTestService(t)
	c := Catalog{Themes: []CatalogTheme{{
		Title: "Broken",
		Questions: []CatalogQuestion{{
			Title:   "No correct answer",
			Answers: []CatalogAnswer{{Title: "A"}, {Title: "B"}},
		}},
	}}}
	res, err := svc.ImportCatalog(context.Background(), c)
	if !errors.Is(err, model.ErrContentRuleViolation) {
		t.Fatalf("expected ErrContentRuleViolation, got %v", err)
	}
	if res.ThemesCreated != 1 || res.QuestionsCreated != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestParseCatalogStrict(t *testing.T) {
	if _, err := ParseCatalog([]byte("themes:\n  - title: A\n    colour: red\n")); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
	if _, err := ParseCatalog([]byte("")); err == nil {
		t.Fatalf("expected empty catalog to be rejected")
	}
	c, err := ParseCatalog([]byte(`{"themes":[{"title":"JSON","questions":[]}]}`))
	if err != nil {
		t.Fatalf("JSON catalog: %v", err)
	}
	if len(c.Themes) != 1 || c.Themes[0].Title != "JSON" {
		t.Fatalf("unexpected JSON catalog: %+v", c)
	}
}
