package db

import (
	"context"
	"time"

	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/uptrace/bun"
)

var debugEnabled bool

// SetDebug enables or disables DB debug logging. Disabled by default.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

func dbLogf(format string, v ...any) {
	if debugEnabled {
		logging.Debugf(format, v...)
	}
}

// queryLogHook logs every statement bun executes while debug logging is on.
type queryLogHook struct{}

func (queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (queryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if !debugEnabled {
		return
	}
	if event.Err != nil {
		dbLogf("db: query failed after %s: %s: %v", time.Since(event.StartTime), event.Query, event.Err)
		return
	}
	dbLogf("db: query took %s: %s", time.Since(event.StartTime), event.Query)
}
