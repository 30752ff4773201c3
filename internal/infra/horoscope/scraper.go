package horoscope

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/infra/metrics"
)

// Scraper fetches all configured sources for one sign concurrently. Failed
// sources are skipped; order of the configured source list is preserved in
// the result regardless of arrival order.
type Scraper struct {
	fetcher    *Fetcher
	sources    []Source
	maxExcerpt int
	log        *zerolog.Logger
}

func NewScraper(fetcher *Fetcher, sources []Source, maxExcerpt int, logger *zerolog.Logger) *Scraper {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	if maxExcerpt <= 0 {
		maxExcerpt = 800
	}
	return &Scraper{fetcher: fetcher, sources: sources, maxExcerpt: maxExcerpt, log: logger}
}

func (s *Scraper) Scrape(ctx context.Context, zodiac model.Zodiac) []model.SourceExcerpt {
	slug := zodiac.Slug()
	results := make([]string, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			url := src.URLFor(slug)
			body, err := s.fetcher.Fetch(ctx, url)
			if err != nil {
				s.log.Debug().Err(err).Str("source", src.Name).Str("url", url).Msg("horoscope fetch failed")
				metrics.IncHoroscopeSource(src.Name, false)
				return
			}
			text := ExtractExcerpt(body, url, s.maxExcerpt)
			if text == "" {
				s.log.Debug().Str("source", src.Name).Str("url", url).Msg("no usable text on page")
				metrics.IncHoroscopeSource(src.Name, false)
				return
			}
			metrics.IncHoroscopeSource(src.Name, true)
			results[i] = text
		}(i, src)
	}
	wg.Wait()

	excerpts := make([]model.SourceExcerpt, 0, len(s.sources))
	for i, src := range s.sources {
		if results[i] != "" {
			excerpts = append(excerpts, model.SourceExcerpt{Source: src.Name, Text: results[i]})
		}
	}
	return excerpts
}
