package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"relaybot/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteLog implements Log on a SQLite file. It is an opt-in alternative to
// the volatile default: same contract, entries simply survive restarts.
type SQLiteLog struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteLog(dbPath string, logger *slog.Logger) (*SQLiteLog, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection; SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	l := &SQLiteLog{db: db, logger: logger}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return l, nil
}

func (l *SQLiteLog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sent_messages (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		message_id  INTEGER NOT NULL,
		chat_id     TEXT NOT NULL,
		body        TEXT,
		kind        TEXT NOT NULL,
		created_at  DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sent_messages_time ON sent_messages(created_at);
	`
	_, err := l.db.Exec(schema)
	return err
}

func (l *SQLiteLog) Append(ctx context.Context, o domain.Outcome) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO sent_messages (message_id, chat_id, body, kind, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		o.MessageID, o.Target, o.Body, string(o.Kind), o.Time,
	)
	return err
}

func (l *SQLiteLog) Count(ctx context.Context) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sent_messages`).Scan(&n)
	return n, err
}

func (l *SQLiteLog) Suffix(ctx context.Context, n int) ([]domain.Outcome, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT message_id, chat_id, body, kind, created_at
		 FROM sent_messages ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Outcome
	for rows.Next() {
		var o domain.Outcome
		var kind string
		if err := rows.Scan(&o.MessageID, &o.Target, &o.Body, &kind, &o.Time); err != nil {
			return nil, err
		}
		o.Kind = domain.MediaKind(kind)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to insertion order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (l *SQLiteLog) Latest(ctx context.Context) (*domain.Outcome, error) {
	out, err := l.Suffix(ctx, 1)
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
