// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup dumps quiz content into zstd-compressed JSON and restores it.
package backup // import "github.com/toeirei/quizmaster/internal/backup"

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/quizmaster/internal/db"
	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/model"
	"github.com/toeirei/quizmaster/internal/quiz"
)

// Result counts what a restore created.
type Result struct {
	ThemesRestored    int
	QuestionsRestored int
	QuestionsSkipped  int
}

// Export collects every theme and question from store.
func Export(ctx context.Context, store db.QuizStore) (*model.BackupData, error) {
	themes, err := store.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("export themes: %w", err)
	}
	questions, err := store.ListQuestions(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("export questions: %w", err)
	}
	return &model.BackupData{
		Version:   model.BackupVersion,
		CreatedAt: time.Now().UTC(),
		Themes:    themes,
		Questions: questions,
	}, nil
}

// Write encodes data as indented JSON into a zstd stream on w.
func Write(w io.Writer, data *model.BackupData) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	encoder := json.NewEncoder(zw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("could not flush zstd writer: %w", err)
	}
	return nil
}

// Read decodes a stream produced by Write.
func Read(r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if data.Version > model.BackupVersion {
		return nil, fmt.Errorf("backup version %d is newer than supported version %d", data.Version, model.BackupVersion)
	}
	return &data, nil
}

// WriteFile writes data to filename, replacing any existing file.
func WriteFile(filename string, data *model.BackupData) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadFile reads a backup written by WriteFile.
func ReadFile(filename string) (*model.BackupData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Read(file)
}

// Restore replays data through svc so every question passes the same rules
// as one created by hand. Themes are matched by title, questions already
// present by title are skipped, and theme ids are remapped.
func Restore(ctx context.Context, svc *quiz.Service, data *model.BackupData) (Result, error) {
	var res Result
	themeIDs := make(map[int64]int64, len(data.Themes))
	for _, t := range data.Themes {
		existing, err := svc.ThemeByTitle(ctx, t.Title)
		if err != nil {
			return res, err
		}
		if existing == nil {
			created, err := svc.CreateTheme(ctx, t.Title)
			if err != nil {
				return res, fmt.Errorf("restore theme %q: %w", t.Title, err)
			}
			existing = &created
			res.ThemesRestored++
		}
		themeIDs[t.ID] = existing.ID
	}

	for _, q := range data.Questions {
		themeID, ok := themeIDs[q.ThemeID]
		if !ok {
			return res, fmt.Errorf("restore question %q: theme %d: %w", q.Title, q.ThemeID, model.ErrUnknownReference)
		}
		existing, err := svc.QuestionByTitle(ctx, q.Title)
		if err != nil {
			return res, err
		}
		if existing != nil {
			res.QuestionsSkipped++
			continue
		}
		answers := make([]model.Answer, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, model.Answer{Title: a.Title, IsCorrect: a.IsCorrect})
		}
		if _, err := svc.CreateQuestion(ctx, q.Title, themeID, answers); err != nil {
			return res, fmt.Errorf("restore question %q: %w", q.Title, err)
		}
		res.QuestionsRestored++
	}
	logging.Infof("backup: restored %d themes and %d questions (%d skipped)", res.ThemesRestored, res.QuestionsRestored, res.QuestionsSkipped)
	return res, nil
}
