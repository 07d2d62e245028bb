// Package sqlite opens the local site store used by the CLI and by
// deployments without PostgreSQL.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/proforma-service/internal/repository/sites"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// Open opens or creates the database at path and applies the schema
func Open(ctx context.Context, path string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; also keeps an in-memory database on a single connection
	conn.SetMaxOpenConns(1)

	if err := sites.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info("SQLite site store opened", zap.String("path", path))
	return &DB{DB: conn, logger: logger}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing SQLite site store")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}
