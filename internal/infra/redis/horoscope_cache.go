package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/domain/ports/repository"
)

var _ repository.HoroscopeCache = (*HoroscopeCache)(nil)

// HoroscopeCache stores one built horoscope per (sign, day). Entries expire
// at local midnight: tomorrow's horoscope is a different document.
type HoroscopeCache struct {
	client *Client
	now    func() time.Time
}

func NewHoroscopeCache(client *Client) *HoroscopeCache {
	return &HoroscopeCache{client: client, now: time.Now}
}

func horoscopeKey(zodiac model.Zodiac, day string) string {
	return fmt.Sprintf("horoscope:%s:%s", zodiac.Slug(), day)
}

func (c *HoroscopeCache) Get(ctx context.Context, zodiac model.Zodiac, day string) (*model.DailyHoroscope, error) {
	data, err := c.client.Get(ctx, horoscopeKey(zodiac, day))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var h model.DailyHoroscope
	if err := json.Unmarshal([]byte(data), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *HoroscopeCache) Set(ctx context.Context, h *model.DailyHoroscope) error {
	data, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, horoscopeKey(h.Zodiac, h.Date), data, c.untilMidnight())
}

func (c *HoroscopeCache) untilMidnight() time.Duration {
	now := c.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	ttl := midnight.Sub(now)
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}
