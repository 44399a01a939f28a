package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"itemshop/internal/domain"
)

var ErrBattlePass = errors.New("battle pass storefront")

func BattlePassStorefront(season int) string { return fmt.Sprintf("BRSeason%d", season) }

func BattlePassPath(dir string, season int) string {
	return filepath.Join(dir, BattlePassStorefront(season)+".json")
}

// LoadBattlePass republishes the season file's entries unchanged. A missing
// or malformed file is an error.
func LoadBattlePass(dir string, season int) (domain.Storefront, error) {
	path := BattlePassPath(dir, season)
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Storefront{}, fmt.Errorf("%w: %w", ErrBattlePass, err)
	}

	var doc struct {
		CatalogEntries []json.RawMessage `json:"catalogEntries"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return domain.Storefront{}, fmt.Errorf("%w: parse %s: %w", ErrBattlePass, path, err)
	}
	if doc.CatalogEntries == nil {
		return domain.Storefront{}, fmt.Errorf("%w: %s has no catalogEntries", ErrBattlePass, path)
	}

	sf := domain.NewStorefront(BattlePassStorefront(season))
	for i, raw := range doc.CatalogEntries {
		var head struct {
			OfferID string `json:"offerId"`
			DevName string `json:"devName"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return domain.Storefront{}, fmt.Errorf("%w: %s entry %d: %w", ErrBattlePass, path, i, err)
		}
		sf.CatalogEntries = append(sf.CatalogEntries, domain.RawEntry(head.OfferID, head.DevName, raw))
	}
	return sf, nil
}
