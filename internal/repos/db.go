package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"itemshop/internal/domain"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: sqlite serializes writers anyway, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts
CREATE TABLE IF NOT EXISTS users(
  account_id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  username TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  discord_id TEXT NOT NULL DEFAULT '',
  roles TEXT NOT NULL DEFAULT '',
  banned INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));
CREATE INDEX IF NOT EXISTS idx_users_discord ON users(discord_id);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- 'sid' cookie value
  account_id TEXT NULL REFERENCES users(account_id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions(account_id);

-- Profiles (one JSON document per account and profile id)
CREATE TABLE IF NOT EXISTS profiles(
  account_id TEXT NOT NULL REFERENCES users(account_id) ON DELETE CASCADE,
  profile_id TEXT NOT NULL,
  document TEXT NOT NULL,
  updated_at TEXT,
  PRIMARY KEY(account_id, profile_id)
);

-- Published shops
CREATE TABLE IF NOT EXISTS shops(
  id TEXT PRIMARY KEY,
  season INTEGER NOT NULL,
  expiration TEXT NOT NULL,
  generated_at TEXT NOT NULL,
  daily_entries INTEGER NOT NULL,
  weekly_entries INTEGER NOT NULL,
  battlepass_entries INTEGER NOT NULL,
  document TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shops_generated_at ON shops(generated_at);
`
	_, err := db.Exec(schema)
	return err
}

// SeedOperator ensures an ADMIN account exists for email (idempotent). An
// existing account keeps its password and gains the ADMIN role.
func SeedOperator(db *sqlx.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO users(account_id,email,username,password_hash,roles,created_at)
		SELECT ?,?,?,?,'ADMIN',?
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE LOWER(email)=LOWER(?))
	`, domain.NewID(), email, "operator", string(h), time.Now().UTC().Format(time.RFC3339), email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.Exec(`
			UPDATE users SET roles = CASE WHEN roles = '' THEN 'ADMIN' ELSE roles || ',ADMIN' END
			WHERE LOWER(email)=LOWER(?) AND (',' || UPPER(roles) || ',') NOT LIKE '%,ADMIN,%'
		`, email); err != nil {
			return err
		}
	} else {
		log.Printf("[seed] operator account %s created", email)
	}
	return tx.Commit()
}
