package numerology

import "telegram-numerology-bot/internal/domain/model"

// Each sign starts on its cusp date and runs until the next sign's cusp.
// Ordered by start date within the year; dates before Jan 20 wrap back to
// Capricorn, which starts the previous Dec 22.
var zodiacBounds = []struct {
	month, day int
	sign       model.Zodiac
}{
	{1, 20, model.Aquarius},
	{2, 19, model.Pisces},
	{3, 21, model.Aries},
	{4, 20, model.Taurus},
	{5, 21, model.Gemini},
	{6, 22, model.Cancer},
	{7, 23, model.Leo},
	{8, 23, model.Virgo},
	{9, 23, model.Libra},
	{10, 23, model.Scorpio},
	{11, 22, model.Sagittarius},
	{12, 22, model.Capricorn},
}

// ZodiacFor determines the sign from (month, day). The last boundary at or
// before the date wins.
func ZodiacFor(month, day int) model.Zodiac {
	sign := model.Capricorn
	for _, b := range zodiacBounds {
		if month > b.month || (month == b.month && day >= b.day) {
			sign = b.sign
		}
	}
	return sign
}
