package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tikona/stockchat/internal/models"
)

// timeFormat is the second-resolution timestamp the store assigns on insert.
const timeFormat = "2006-01-02 15:04:05"

// Store is the append-only conversation log. There are no update or delete
// statements: a message written once is immutable for the life of the file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initSchema is safe to run on every process start.
func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    role TEXT NOT NULL,
    text TEXT NOT NULL,
    stock_symbol TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
CREATE INDEX IF NOT EXISTS idx_messages_symbol ON messages(stock_symbol);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Append inserts one message with a store-assigned id and created_at.
// An empty symbol is stored as NULL so symbol search never matches it.
func (s *Store) Append(ctx context.Context, sessionID, role, text, symbol string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if !models.IsValidRole(role) {
		return fmt.Errorf("unknown message role %q", role)
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO messages (session_id, role, text, stock_symbol, created_at)
VALUES (?, ?, ?, NULLIF(?, ''), ?)
`, sessionID, role, text, symbol, s.now().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// History returns every message of the session in insertion order. An
// unknown session yields an empty slice, not an error.
func (s *Store) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, role, text, COALESCE(stock_symbol, ''), created_at
FROM messages
WHERE session_id = ?
ORDER BY id ASC
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// Search returns messages across all sessions whose symbol exactly equals
// the argument, most recent first.
func (s *Store) Search(ctx context.Context, symbol string) ([]models.Message, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("stock symbol is required")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, role, text, COALESCE(stock_symbol, ''), created_at
FROM messages
WHERE stock_symbol = ?
ORDER BY created_at DESC, id DESC
`, symbol)
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	msgs := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.Id, &m.SessionId, &m.Role, &m.Text, &m.StockSymbol, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}
