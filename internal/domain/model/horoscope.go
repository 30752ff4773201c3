package model

import "time"

// SourceExcerpt is one scraped horoscope fragment attributed to its site.
type SourceExcerpt struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// DailyHoroscope aggregates everything collected for one (sign, day) pair:
// best-effort excerpts from external sites and an optional AI-generated
// personal forecast. Either part may be missing; an empty horoscope is still
// a valid value and is rendered with a fallback line.
type DailyHoroscope struct {
	Zodiac   Zodiac          `json:"zodiac"`
	Date     string          `json:"date"` // YYYY-MM-DD, local day
	Sources  []SourceExcerpt `json:"sources"`
	Personal string          `json:"personal"`
	BuiltAt  time.Time       `json:"built_at"`
}

func (h *DailyHoroscope) IsEmpty() bool {
	return h == nil || (len(h.Sources) == 0 && h.Personal == "")
}
