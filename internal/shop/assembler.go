package shop

import (
	"time"

	"itemshop/internal/domain"
)

const (
	RefreshIntervalHrs = 1
	DailyPurchaseHrs   = 24
)

// NextMidnightUTC is 00:00 UTC of the calendar day after now.
func NextMidnightUTC(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}

func CreateShop(now time.Time) *domain.Shop {
	return &domain.Shop{
		Expiration:         NextMidnightUTC(now),
		RefreshIntervalHrs: RefreshIntervalHrs,
		DailyPurchaseHrs:   DailyPurchaseHrs,
		Storefronts:        []domain.Storefront{},
	}
}

// Push appends sf, replacing any storefront with the same name in place.
func Push(s *domain.Shop, sf domain.Storefront) {
	for i := range s.Storefronts {
		if s.Storefronts[i].Name == sf.Name {
			s.Storefronts[i] = sf
			return
		}
	}
	s.Storefronts = append(s.Storefronts, sf)
}
