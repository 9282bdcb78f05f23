package db

import (
	"github.com/toeirei/quizmaster/internal/model"
	"github.com/uptrace/bun"
)

// AdminModel maps the admins table.
type AdminModel struct {
	bun.BaseModel `bun:"table:admins,alias:adm"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Email         string `bun:"email,notnull"`
	PasswordHash  string `bun:"password_hash,notnull"`
}

// ThemeModel maps the themes table.
type ThemeModel struct {
	bun.BaseModel `bun:"table:themes,alias:t"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Title         string `bun:"title,notnull"`
}

// QuestionModel maps the questions table; Answers is loaded through the
// has-many relation.
type QuestionModel struct {
	bun.BaseModel `bun:"table:questions,alias:q"`
	ID            int64          `bun:"id,pk,autoincrement"`
	Title         string         `bun:"title,notnull"`
	ThemeID       int64          `bun:"theme_id,notnull"`
	Answers       []*AnswerModel `bun:"rel:has-many,join:id=question_id"`
}

// AnswerModel maps the answers table.
type AnswerModel struct {
	bun.BaseModel `bun:"table:answers,alias:a"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Title         string `bun:"title,notnull"`
	IsCorrect     bool   `bun:"is_correct,notnull"`
	QuestionID    int64  `bun:"question_id,notnull"`
}

func adminModelToModel(a AdminModel) model.Admin {
	return model.Admin{ID: a.ID, Email: a.Email, PasswordHash: a.PasswordHash}
}

func themeModelToModel(t ThemeModel) model.Theme {
	return model.Theme{ID: t.ID, Title: t.Title}
}

func answerModelToModel(a AnswerModel) model.Answer {
	return model.Answer{ID: a.ID, QuestionID: a.QuestionID, Title: a.Title, IsCorrect: a.IsCorrect}
}

func questionModelToModel(q QuestionModel) model.Question {
	out := model.Question{ID: q.ID, Title: q.Title, ThemeID: q.ThemeID, Answers: make([]model.Answer, 0, len(q.Answers))}
	for _, a := range q.Answers {
		if a != nil {
			out.Answers = append(out.Answers, answerModelToModel(*a))
		}
	}
	return out
}
