package repos

import (
	"itemshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userCols = `account_id,email,username,password_hash,discord_id,roles,banned,COALESCE(created_at,'') AS created_at`

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(accountID string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE account_id=?`, accountID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether an account already uses the email or, when set, the
// discord id.
func (r *UserRepo) Exists(email, discordID string) (bool, error) {
	var n int
	err := r.DB.Get(&n, `
		SELECT COUNT(*) FROM users
		WHERE LOWER(email)=LOWER(?) OR (? <> '' AND discord_id=?)`, email, discordID, discordID)
	return n > 0, err
}

// CreateWithProfiles inserts the user and its profile documents atomically.
func (r *UserRepo) CreateWithProfiles(u domain.User, profiles []domain.Profile) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExec(`
		INSERT INTO users(account_id,email,username,password_hash,discord_id,roles,banned,created_at)
		VALUES(:account_id,:email,:username,:password_hash,:discord_id,:roles,:banned,:created_at)`, u); err != nil {
		return err
	}
	for _, p := range profiles {
		if err := upsertProfile(tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *UserRepo) BindSession(sid, accountID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,account_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET account_id=excluded.account_id,last_seen=CURRENT_TIMESTAMP`, sid, accountID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.account_id,u.email,u.username,u.password_hash,u.discord_id,u.roles,u.banned,COALESCE(u.created_at,'') AS created_at
      FROM sessions s
      JOIN users u ON u.account_id=s.account_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET account_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
