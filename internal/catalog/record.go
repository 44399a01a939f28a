package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Value is the {value, displayValue, text, backendValue} shape the feed uses for
// type, rarity, series and set references.
type Value struct {
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue"`
	Text         string `json:"text"`
	BackendValue string `json:"backendValue"`
}

type Introduction struct {
	BackendValue int `json:"backendValue"`
}

// Record is one cosmetic as served by the remote catalog feed.
type Record struct {
	ID                  string        `json:"id"`
	Type                *Value        `json:"type"`
	Rarity              *Value        `json:"rarity"`
	Series              *Value        `json:"series"`
	Set                 *Value        `json:"set"`
	Introduction        *Introduction `json:"introduction"`
	ShopHistory         []string      `json:"shopHistory"`
	ItemPreviewHeroPath string        `json:"itemPreviewHeroPath"`
}

// Eligible reports whether the record can be sold during the given season.
func (r Record) Eligible(season int) bool {
	if strings.TrimSpace(r.ID) == "" {
		return false
	}
	if r.Type == nil || r.Type.BackendValue == "" {
		return false
	}
	if r.Introduction == nil || r.Introduction.BackendValue == 0 || r.Introduction.BackendValue > season {
		return false
	}
	if r.Set == nil || r.Set.BackendValue == "" {
		return false
	}
	return len(r.ShopHistory) > 0
}

// Decode parses a feed document. Both {"data": [...]} and a bare array are
// accepted. Records that fail to decode are dropped.
func Decode(body []byte) ([]Record, error) {
	body = bytes.TrimSpace(body)
	var raws []json.RawMessage
	switch {
	case len(body) == 0:
		return nil, errors.New("empty catalog document")
	case body[0] == '[':
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, err
		}
	default:
		var doc struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, err
		}
		raws = doc.Data
	}

	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
