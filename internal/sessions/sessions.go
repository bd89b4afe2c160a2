// Package sessions provides cookie-backed sessions for flash messages,
// stored in a dedicated SQLite database.
package sessions

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"
)

// Manager wraps scs.SessionManager together with its backing store
// connection.
type Manager struct {
	*scs.SessionManager

	db *sql.DB
}

// NewManager opens the sessions database at dbPath and returns a
// configured session manager backed by it.
func NewManager(dbPath string, lifetime time.Duration, secureCookies bool) (*Manager, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sessions database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm, db: db}, nil
}

// Close closes the sessions database connection.
func (m *Manager) Close() error {
	return m.db.Close()
}
