package connectors

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"flipper/pkg/logx"
)

const sqliteDriver = "sqlite"

type SQLite struct {
	value *sqlx.DB
	Path  string
	init  sync.Once
}

func (s *SQLite) Client(ctx context.Context) *sqlx.DB {
	s.init.Do(func() {
		// sqlx does not know the modernc driver name
		sqlx.BindDriver(sqliteDriver, sqlx.QUESTION)

		dsn := s.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		s.value = lo.Must(sqlx.ConnectContext(ctx, sqliteDriver, dsn))
		// sqlite allows a single writer
		s.value.SetMaxOpenConns(1)

		logger(ctx).Info("sqlite opened", slog.String("path", s.Path))
	})

	return s.value
}

func (s *SQLite) Close(ctx context.Context) {
	if err := s.value.Close(); err != nil {
		logger(ctx).Error("sqliteClient.Close", logx.Error(err))
	}

	logger(ctx).Info("sqlite closed", slog.String("path", s.Path))
}
