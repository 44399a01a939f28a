package repos

import (
	"time"

	"itemshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProfileRepo struct{ DB *sqlx.DB }

func NewProfileRepo(db *sqlx.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

func (r *ProfileRepo) Get(accountID, profileID string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.DB.Get(&p, `
		SELECT account_id,profile_id,document,COALESCE(updated_at,'') AS updated_at
		FROM profiles WHERE account_id=? AND profile_id=?`, accountID, profileID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) CreateOrUpdate(p domain.Profile) error {
	return upsertProfile(r.DB, p)
}

func (r *ProfileRepo) List(accountID string) ([]domain.Profile, error) {
	var out []domain.Profile
	err := r.DB.Select(&out, `
		SELECT account_id,profile_id,document,COALESCE(updated_at,'') AS updated_at
		FROM profiles WHERE account_id=? ORDER BY profile_id`, accountID)
	return out, err
}

func upsertProfile(db sqlx.Execer, p domain.Profile) error {
	if p.UpdatedAt == "" {
		p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := db.Exec(`
		INSERT INTO profiles(account_id,profile_id,document,updated_at) VALUES(?,?,?,?)
		ON CONFLICT(account_id,profile_id) DO UPDATE SET document=excluded.document,updated_at=excluded.updated_at`,
		p.AccountID, p.ProfileID, p.Document, p.UpdatedAt)
	return err
}
