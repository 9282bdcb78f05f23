package db

import (
	"strings"
	"testing"
)

func TestBuildDSN(t *testing.T) {
	pg, err := BuildDSN(TypePostgres, ConnParams{Host: "db", User: "kts", Password: "p@ss", Name: "quiz"})
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}
	if pg != "postgres://kts:p%40ss@db:5432/quiz" {
		t.Fatalf("unexpected postgres dsn: %s", pg)
	}

	my, err := BuildDSN(TypeMySQL, ConnParams{Host: "db", Port: 3307, User: "kts", Password: "pw", Name: "quiz"})
	if err != nil {
		t.Fatalf("mysql: %v", err)
	}
	if !strings.HasPrefix(my, "kts:pw@tcp(db:3307)/quiz") || !strings.Contains(my, "parseTime=true") {
		t.Fatalf("unexpected mysql dsn: %s", my)
	}

	lite, err := BuildDSN(TypeSQLite, ConnParams{Name: "./quiz.db"})
	if err != nil || lite != "./quiz.db" {
		t.Fatalf("unexpected sqlite dsn: %q (%v)", lite, err)
	}

	if _, err := BuildDSN(TypePostgres, ConnParams{Name: "quiz"}); err == nil {
		t.Fatalf("expected error without host")
	}
	if _, err := BuildDSN("oracle", ConnParams{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestSqliteDSN(t *testing.T) {
	if got := sqliteDSN("./quiz.db"); got != "./quiz.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Fatalf("unexpected: %s", got)
	}
	if got := sqliteDSN("file:x?mode=memory"); !strings.HasPrefix(got, "file:x?mode=memory&_pragma=foreign_keys(1)") {
		t.Fatalf("unexpected: %s", got)
	}
	keep := "file:x?_pragma=foreign_keys(0)"
	if got := sqliteDSN(keep); got != keep {
		t.Fatalf("explicit foreign_keys pragma must be kept, got %s", got)
	}
	if !isMemoryDSN(":memory:") || !isMemoryDSN("file:a?mode=memory&cache=shared") || isMemoryDSN("./a.db") {
		t.Fatalf("isMemoryDSN misclassified a dsn")
	}
}
