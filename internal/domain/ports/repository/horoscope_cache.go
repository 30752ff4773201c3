package repository

import (
	"context"

	"telegram-numerology-bot/internal/domain/model"
)

// HoroscopeCache stores one built horoscope per (sign, day). A miss returns
// domain.ErrNotFound; entries expire on their own at the end of the day.
type HoroscopeCache interface {
	Get(ctx context.Context, zodiac model.Zodiac, day string) (*model.DailyHoroscope, error)
	Set(ctx context.Context, h *model.DailyHoroscope) error
}
