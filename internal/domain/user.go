package domain

import (
	"strings"

	"github.com/google/uuid"
)

type User struct {
	AccountID string `db:"account_id"`
	Email     string `db:"email"`
	Username  string `db:"username"`
	Hash      string `db:"password_hash"`
	DiscordID string `db:"discord_id"`
	Roles     string `db:"roles"` // comma separated
	Banned    bool   `db:"banned"`
	CreatedAt string `db:"created_at"`
}

type Profile struct {
	AccountID string `db:"account_id"`
	ProfileID string `db:"profile_id"`
	Document  string `db:"document"`
	UpdatedAt string `db:"updated_at"`
}

// PublishedShop is a persisted generation result.
type PublishedShop struct {
	ID          string `db:"id"`
	Season      int    `db:"season"`
	Expiration  string `db:"expiration"`
	GeneratedAt string `db:"generated_at"`
	Daily       int    `db:"daily_entries"`
	Weekly      int    `db:"weekly_entries"`
	BattlePass  int    `db:"battlepass_entries"`
	Document    string `db:"document"`
}

const RoleAdmin = "ADMIN"

// HasRole reports whether role appears in the comma separated role list.
func (u User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

// NewID returns a random dashless uuid, the form used for account and profile ids.
func NewID() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }
