// Package sqlstore persists accounts in SQLite through the pure Go
// modernc.org/sqlite driver.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/goliatone/go-formwizard/pkg/account"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL COLLATE NOCASE,
	email TEXT NOT NULL,
	fields TEXT NOT NULL,
	created_at TEXT NOT NULL,
	UNIQUE(username)
);
`

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Store is an account.Store backed by a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ account.Store = (*Store)(nil)

// Open opens or creates the database at path and ensures the schema exists.
// Use MemoryDSN for a throwaway database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != MemoryDSN {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("sqlstore: create dir: %w", err)
			}
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	if path == MemoryDSN {
		// Every pooled connection to :memory: would see its own database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: init schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateAccount inserts req. A taken username fails with an
// *account.StorageError wrapping account.ErrDuplicateUsername.
func (s *Store) CreateAccount(ctx context.Context, req account.Request) (account.AccountID, error) {
	fields, err := json.Marshal(req.Fields())
	if err != nil {
		return "", &account.StorageError{Op: "encode fields", Err: err}
	}

	id := account.AccountID(uuid.NewString())
	_, err = s.db.ExecContext(ctx, `INSERT INTO accounts (id, username, email, fields, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(id), req.Username(), req.Email(), string(fields),
		s.now().UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return "", &account.StorageError{Op: "create", Err: account.ErrDuplicateUsername}
		}
		return "", &account.StorageError{Op: "create", Err: err}
	}
	return id, nil
}

// Account is a stored row.
type Account struct {
	ID        account.AccountID
	Username  string
	Email     string
	Fields    map[string]string
	CreatedAt time.Time
}

// ErrNotFound is returned by Get for unknown usernames.
var ErrNotFound = errors.New("sqlstore: account not found")

// Get loads the account stored under username.
func (s *Store) Get(ctx context.Context, username string) (Account, error) {
	var (
		out       Account
		id        string
		fields    string
		createdAt string
	)
	row := s.db.QueryRowContext(ctx, `SELECT id, username, email, fields, created_at
		FROM accounts WHERE username = ?`, username)
	if err := row.Scan(&id, &out.Username, &out.Email, &fields, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("sqlstore: get account: %w", err)
	}
	out.ID = account.AccountID(id)
	if err := json.Unmarshal([]byte(fields), &out.Fields); err != nil {
		return Account{}, fmt.Errorf("sqlstore: decode fields: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		out.CreatedAt = ts
	}
	return out, nil
}

// Count returns the number of stored accounts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlstore: count accounts: %w", err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
