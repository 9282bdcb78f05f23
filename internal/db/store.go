package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/toeirei/quizmaster/internal/model"
	"github.com/uptrace/bun"
)

// AdminStore persists admin accounts.
type AdminStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	InsertAdmin(ctx context.Context, email, passwordHash string) (model.Admin, error)
	// ListAdmins returns admins without their password hashes.
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	DeleteAllAdmins(ctx context.Context) error
}

// QuizStore persists themes, questions and answers. Finders return (nil, nil)
// when nothing matches.
type QuizStore interface {
	InsertTheme(ctx context.Context, title string) (model.Theme, error)
	FindThemeByTitle(ctx context.Context, title string) (*model.Theme, error)
	FindThemeByID(ctx context.Context, id int64) (*model.Theme, error)
	ListThemes(ctx context.Context) ([]model.Theme, error)

	InsertQuestion(ctx context.Context, title string, themeID int64) (model.Question, error)
	InsertAnswers(ctx context.Context, questionID int64, answers []model.Answer) ([]model.Answer, error)
	FindQuestionByTitle(ctx context.Context, title string) (*model.Question, error)
	// ListQuestions returns every question, or only those of themeID when it
	// is non-nil, each with its answers in insertion order.
	ListQuestions(ctx context.Context, themeID *int64) ([]model.Question, error)
}

// Store is the persistence port used by the services.
type Store interface {
	AdminStore
	QuizStore
	// InTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling InTx on a transaction-bound Store reuses that transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error
	Close() error
}

// BunStore implements Store on top of bun for SQLite, PostgreSQL and MySQL.
type BunStore struct {
	db     bun.IDB
	root   *bun.DB
	dbType string
}

var _ Store = (*BunStore)(nil)

// Type returns the database type the store was opened with.
func (s *BunStore) Type() string { return s.dbType }

// Bun exposes the underlying *bun.DB for maintenance tooling.
func (s *BunStore) Bun() *bun.DB { return s.root }

// Close releases the connection pool. It is a no-op on a transaction-bound store.
func (s *BunStore) Close() error {
	if _, inTx := s.db.(bun.Tx); inTx {
		return nil
	}
	return s.root.Close()
}

// InTx implements Store.
func (s *BunStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	if _, inTx := s.db.(bun.Tx); inTx {
		return fn(s)
	}
	return s.root.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(&BunStore{db: tx, root: s.root, dbType: s.dbType})
	})
}

// FindAdminByEmail implements AdminStore.
func (s *BunStore) FindAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var m AdminModel
	err := s.db.NewSelect().Model(&m).Where("email = ?", email).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	a := adminModelToModel(m)
	return &a, nil
}

// InsertAdmin implements AdminStore.
func (s *BunStore) InsertAdmin(ctx context.Context, email, passwordHash string) (model.Admin, error) {
	m := &AdminModel{Email: email, PasswordHash: passwordHash}
	if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return model.Admin{}, fmt.Errorf("insert admin: %w", MapDBError(err))
	}
	return adminModelToModel(*m), nil
}

// ListAdmins implements AdminStore.
func (s *BunStore) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var ms []AdminModel
	if err := s.db.NewSelect().Model(&ms).Column("id", "email").OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	out := make([]model.Admin, 0, len(ms))
	for _, m := range ms {
		out = append(out, model.Admin{ID: m.ID, Email: m.Email})
	}
	return out, nil
}

// DeleteAllAdmins implements AdminStore. bun refuses an unqualified
// DELETE, so this goes through a raw statement.
func (s *BunStore) DeleteAllAdmins(ctx context.Context) error {
	if _, err := ExecRaw(ctx, s.db, "DELETE FROM admins"); err != nil {
		return fmt.Errorf("delete admins: %w", err)
	}
	return nil
}

// InsertTheme implements QuizStore.
func (s *BunStore) InsertTheme(ctx context.Context, title string) (model.Theme, error) {
	m := &ThemeModel{Title: title}
	if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return model.Theme{}, fmt.Errorf("insert theme: %w", MapDBError(err))
	}
	return themeModelToModel(*m), nil
}

// FindThemeByTitle implements QuizStore.
func (s *BunStore) FindThemeByTitle(ctx context.Context, title string) (*model.Theme, error) {
	return s.findTheme(ctx, "title = ?", title)
}

// FindThemeByID implements QuizStore.
func (s *BunStore) FindThemeByID(ctx context.Context, id int64) (*model.Theme, error) {
	return s.findTheme(ctx, "id = ?", id)
}

func (s *BunStore) findTheme(ctx context.Context, where string, arg interface{}) (*model.Theme, error) {
	var m ThemeModel
	err := s.db.NewSelect().Model(&m).Where(where, arg).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find theme: %w", err)
	}
	t := themeModelToModel(m)
	return &t, nil
}

// ListThemes implements QuizStore.
func (s *BunStore) ListThemes(ctx context.Context) ([]model.Theme, error) {
	var ms []ThemeModel
	if err := s.db.NewSelect().Model(&ms).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	out := make([]model.Theme, 0, len(ms))
	for _, m := range ms {
		out = append(out, themeModelToModel(m))
	}
	return out, nil
}

// InsertQuestion implements QuizStore.
func (s *BunStore) InsertQuestion(ctx context.Context, title string, themeID int64) (model.Question, error) {
	m := &QuestionModel{Title: title, ThemeID: themeID}
	if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return model.Question{}, fmt.Errorf("insert question: %w", MapDBError(err))
	}
	return questionModelToModel(*m), nil
}

// InsertAnswers implements QuizStore. Rows are inserted one by one so ids
// follow the input order on every engine.
func (s *BunStore) InsertAnswers(ctx context.Context, questionID int64, answers []model.Answer) ([]model.Answer, error) {
	out := make([]model.Answer, 0, len(answers))
	for _, a := range answers {
		m := &AnswerModel{Title: a.Title, IsCorrect: a.IsCorrect, QuestionID: questionID}
		if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
			return nil, fmt.Errorf("insert answer: %w", MapDBError(err))
		}
		out = append(out, answerModelToModel(*m))
	}
	return out, nil
}

func orderAnswers(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("a.id ASC")
}

// FindQuestionByTitle implements QuizStore.
func (s *BunStore) FindQuestionByTitle(ctx context.Context, title string) (*model.Question, error) {
	var m QuestionModel
	err := s.db.NewSelect().Model(&m).
		Relation("Answers", orderAnswers).
		Where("q.title = ?", title).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	q := questionModelToModel(m)
	return &q, nil
}

// ListQuestions implements QuizStore.
func (s *BunStore) ListQuestions(ctx context.Context, themeID *int64) ([]model.Question, error) {
	var ms []QuestionModel
	query := s.db.NewSelect().Model(&ms).
		Relation("Answers", orderAnswers).
		OrderExpr("q.id ASC")
	if themeID != nil {
		query = query.Where("q.theme_id = ?", *themeID)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	out := make([]model.Question, 0, len(ms))
	for _, m := range ms {
		out = append(out, questionModelToModel(m))
	}
	return out, nil
}
