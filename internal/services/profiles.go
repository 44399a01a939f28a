package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"itemshop/internal/domain"
)

// ProfileVersion is stamped into every profile created from a template.
const ProfileVersion = "itemshop"

// DefaultProfiles are created for every new account, in this order.
// common_public is a copy of the common_core document.
var DefaultProfiles = []string{
	"athena", "common_core", "common_public", "campaign", "metadata",
	"theater0", "outpost0", "creative", "collection_book_people0", "collection_book_schematics0",
}

var profileSource = map[string]string{"common_public": "common_core"}

// ProfileTemplates instantiates profile documents from <Dir>/<profileId>.json.
type ProfileTemplates struct {
	Dir string
	Now func() time.Time
}

func NewProfileTemplates(dir string) *ProfileTemplates {
	return &ProfileTemplates{Dir: dir, Now: time.Now}
}

// Create reads the template for profileID and overlays the account fields.
func (p *ProfileTemplates) Create(accountID, profileID string) (domain.Profile, error) {
	name := profileID
	if src, ok := profileSource[profileID]; ok {
		name = src
	}
	path := filepath.Join(p.Dir, name+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profile template %s: %w", profileID, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return domain.Profile{}, fmt.Errorf("profile template %s: parse %s: %w", profileID, path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	now := p.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	doc["accountId"] = accountID
	doc["createdAt"] = now
	doc["updatedAt"] = now
	doc["_id"] = domain.NewID()
	doc["version"] = ProfileVersion

	out, err := json.Marshal(doc)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{AccountID: accountID, ProfileID: profileID, Document: string(out), UpdatedAt: now}, nil
}
