package quiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/model"
)

// Catalog is a bulk description of quiz content, read from YAML or JSON.
type Catalog struct {
	Themes []CatalogTheme `yaml:"themes" json:"themes"`
}

// CatalogTheme lists the questions to create under one theme title.
type CatalogTheme struct {
	Title     string            `yaml:"title" json:"title"`
	Questions []CatalogQuestion `yaml:"questions" json:"questions"`
}

// CatalogQuestion is one question with its answers in display order.
type CatalogQuestion struct {
	Title   string          `yaml:"title" json:"title"`
	Answers []CatalogAnswer `yaml:"answers" json:"answers"`
}

// CatalogAnswer is one answer option.
type CatalogAnswer struct {
	Title   string `yaml:"title" json:"title"`
	Correct bool   `yaml:"correct" json:"correct"`
}

// ImportResult summarizes an ImportCatalog run.
type ImportResult struct {
	ThemesCreated    int
	QuestionsCreated int
	QuestionsSkipped int
}

// LoadCatalog reads a catalog file. JSON is accepted as a YAML subset.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a single catalog document, rejecting unknown fields.
func ParseCatalog(data []byte) (Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Catalog{}, fmt.Errorf("catalog is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, fmt.Errorf("catalog is empty")
		}
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	var extra Catalog
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("catalog must contain exactly one document")
	}
	return c, nil
}

// ImportCatalog creates the themes and questions of c that do not exist yet.
// Existing themes are reused by title and existing questions are skipped.
// Any other failure aborts the import; content created before it is kept.
func (s *Service) ImportCatalog(ctx context.Context, c Catalog) (ImportResult, error) {
	var res ImportResult
	for _, ct := range c.Themes {
		theme, err := s.ThemeByTitle(ctx, ct.Title)
		if err != nil {
			return res, err
		}
		if theme == nil {
			created, err := s.CreateTheme(ctx, ct.Title)
			if err != nil {
				return res, fmt.Errorf("theme %q: %w", ct.Title, err)
			}
			theme = &created
			res.ThemesCreated++
		}

		for _, cq := range ct.Questions {
			existing, err := s.QuestionByTitle(ctx, cq.Title)
			if err != nil {
				return res, err
			}
			if existing != nil {
				res.QuestionsSkipped++
				continue
			}
			answers := make([]model.Answer, 0, len(cq.Answers))
			for _, ca := range cq.Answers {
				answers = append(answers, model.Answer{Title: ca.Title, IsCorrect: ca.Correct})
			}
			if _, err := s.CreateQuestion(ctx, cq.Title, theme.ID, answers); err != nil {
				return res, fmt.Errorf("question %q: %w", cq.Title, err)
			}
			res.QuestionsCreated++
		}
	}
	logging.Infof("quiz: catalog import created %d themes, %d questions, skipped %d", res.ThemesCreated, res.QuestionsCreated, res.QuestionsSkipped)
	return res, nil
}
