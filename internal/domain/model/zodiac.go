package model

// Zodiac is one of the twelve calendar-date-range labels shown alongside the
// matrix. Values are the Russian display names.
type Zodiac string

const (
	Aries       Zodiac = "Овен"
	Taurus      Zodiac = "Телец"
	Gemini      Zodiac = "Близнецы"
	Cancer      Zodiac = "Рак"
	Leo         Zodiac = "Лев"
	Virgo       Zodiac = "Дева"
	Libra       Zodiac = "Весы"
	Scorpio     Zodiac = "Скорпион"
	Sagittarius Zodiac = "Стрелец"
	Capricorn   Zodiac = "Козерог"
	Aquarius    Zodiac = "Водолей"
	Pisces      Zodiac = "Рыбы"
)

var zodiacSlugs = map[Zodiac]string{
	Aries:       "aries",
	Taurus:      "taurus",
	Gemini:      "gemini",
	Cancer:      "cancer",
	Leo:         "leo",
	Virgo:       "virgo",
	Libra:       "libra",
	Scorpio:     "scorpio",
	Sagittarius: "sagittarius",
	Capricorn:   "capricorn",
	Aquarius:    "aquarius",
	Pisces:      "pisces",
}

// Slug returns the English identifier used by horoscope source URLs.
func (z Zodiac) Slug() string {
	if s, ok := zodiacSlugs[z]; ok {
		return s
	}
	return "aries"
}
