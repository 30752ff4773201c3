package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/domain/ports/adapter"
	"telegram-numerology-bot/internal/domain/ports/repository"
	"telegram-numerology-bot/internal/infra/logging"
	"telegram-numerology-bot/internal/infra/metrics"
)

var _ HoroscopeUseCase = (*horoscopeUC)(nil)

// SignScraper collects horoscope excerpts for a zodiac sign from the
// configured external sites.
type SignScraper interface {
	Scrape(ctx context.Context, zodiac model.Zodiac) []model.SourceExcerpt
}

// HoroscopeUseCase assembles the daily horoscope text for a user.
type HoroscopeUseCase interface {
	Daily(ctx context.Context, tgID int64) (string, error)
}

type horoscopeUC struct {
	matrix  MatrixUseCase
	cache   repository.HoroscopeCache
	scraper SignScraper
	ai      adapter.AIServiceAdapter
	aiModel string
	now     func() time.Time
	log     *zerolog.Logger
}

func NewHoroscopeUseCase(
	matrix MatrixUseCase,
	cache repository.HoroscopeCache,
	scraper SignScraper,
	ai adapter.AIServiceAdapter,
	aiModel string,
	logger *zerolog.Logger,
) *horoscopeUC {
	return &horoscopeUC{
		matrix:  matrix,
		cache:   cache,
		scraper: scraper,
		ai:      ai,
		aiModel: aiModel,
		now:     time.Now,
		log:     logger,
	}
}

// WithNow overrides the clock, used by tests to pin the day.
func (u *horoscopeUC) WithNow(now func() time.Time) *horoscopeUC {
	u.now = now
	return u
}

// Daily returns the horoscope text for the user's sign. Results are cached
// per (sign, day); the first request of the day does the scraping and the
// AI call, everyone else with the same sign gets the cached build.
func (u *horoscopeUC) Daily(ctx context.Context, tgID int64) (string, error) {
	defer logging.TraceDuration(u.log, "HoroscopeUC.Daily")()

	m, err := u.matrix.Result(ctx, tgID)
	if err != nil {
		return "", err
	}

	day := u.now().Format("2006-01-02")
	if cached, err := u.cache.Get(ctx, m.Zodiac, day); err == nil {
		metrics.IncHoroscopeCache(true)
		return renderHoroscope(cached), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		u.log.Warn().Err(err).Str("zodiac", string(m.Zodiac)).Msg("horoscope cache read failed")
	}
	metrics.IncHoroscopeCache(false)

	start := u.now()
	h := &model.DailyHoroscope{
		Zodiac:  m.Zodiac,
		Date:    day,
		Sources: u.scraper.Scrape(ctx, m.Zodiac),
		BuiltAt: u.now(),
	}
	h.Personal = u.personalForecast(ctx, m)
	metrics.ObserveHoroscopeBuildMs(float64(u.now().Sub(start).Milliseconds()))

	if h.IsEmpty() {
		return "", domain.ErrNoHoroscope
	}
	if err := u.cache.Set(ctx, h); err != nil {
		u.log.Warn().Err(err).Str("zodiac", string(m.Zodiac)).Msg("horoscope cache write failed")
	}
	return renderHoroscope(h), nil
}

// personalForecast is best-effort: any provider error just drops the section.
func (u *horoscopeUC) personalForecast(ctx context.Context, m *model.MatrixResult) string {
	if u.ai == nil {
		return ""
	}
	prompt := fmt.Sprintf(
		"Составь короткий персональный гороскоп на сегодня на русском языке (3-4 предложения). "+
			"Знак зодиака: %s. Число судьбы: %d. Число характера: %d. "+
			"Пиши тепло и конкретно, без вступлений и дисклеймеров.",
		m.Zodiac, m.Second, m.Fourth,
	)
	text, err := u.ai.Chat(ctx, u.aiModel, []adapter.Message{{Role: "user", Content: prompt}})
	if err != nil {
		metrics.IncAIForecast(u.ai.Name(), false)
		u.log.Warn().Err(err).Str("provider", u.ai.Name()).Msg("AI forecast unavailable")
		return ""
	}
	metrics.IncAIForecast(u.ai.Name(), true)
	return strings.TrimSpace(text)
}

func renderHoroscope(h *model.DailyHoroscope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌟 Гороскоп на %s — %s\n", h.Date, h.Zodiac)
	for _, s := range h.Sources {
		fmt.Fprintf(&b, "\n📖 %s\n%s\n", s.Source, s.Text)
	}
	if h.Personal != "" {
		fmt.Fprintf(&b, "\n✨ Персональный прогноз\n%s\n", h.Personal)
	}
	if len(h.Sources) == 0 && h.Personal == "" {
		b.WriteString("\nСегодня источники гороскопов недоступны, попробуйте позже.")
	}
	return strings.TrimRight(b.String(), "\n")
}
