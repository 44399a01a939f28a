package repos

import (
	"itemshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ShopRepo struct{ DB *sqlx.DB }

func NewShopRepo(db *sqlx.DB) *ShopRepo { return &ShopRepo{DB: db} }

func (r *ShopRepo) Save(s domain.PublishedShop) error {
	_, err := r.DB.NamedExec(`
		INSERT INTO shops(id,season,expiration,generated_at,daily_entries,weekly_entries,battlepass_entries,document)
		VALUES(:id,:season,:expiration,:generated_at,:daily_entries,:weekly_entries,:battlepass_entries,:document)`, s)
	return err
}

// Latest returns the most recently generated shop, or sql.ErrNoRows.
func (r *ShopRepo) Latest() (*domain.PublishedShop, error) {
	var s domain.PublishedShop
	err := r.DB.Get(&s, `SELECT * FROM shops ORDER BY generated_at DESC, rowid DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Recent lists summaries, newest first. Documents are left empty.
func (r *ShopRepo) Recent(limit int) ([]domain.PublishedShop, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []domain.PublishedShop
	err := r.DB.Select(&out, `
		SELECT id,season,expiration,generated_at,daily_entries,weekly_entries,battlepass_entries,'' AS document
		FROM shops ORDER BY generated_at DESC, rowid DESC LIMIT ?`, limit)
	return out, err
}
