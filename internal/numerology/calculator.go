package numerology

import (
	"fmt"
	"time"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
)

// centuryControl is the constant inserted into the additional-numbers row
// for birth years 2000 and later.
const centuryControl = 19

// BirthDate is a validated calendar date in the accepted input grammar.
type BirthDate struct {
	Day   int
	Month int
	Year  int
}

// Canonical renders the date back in the DD.MM.YYYY form used everywhere
// downstream (reports, storage, cache keys).
func (b BirthDate) Canonical() string {
	return fmt.Sprintf("%02d.%02d.%04d", b.Day, b.Month, b.Year)
}

var acceptedLayouts = []string{"02.01.2006", "2006-01-02"}

// ParseBirthDate parses DD.MM.YYYY or YYYY-MM-DD. Impossible calendar dates
// (31.02, 13th month) are rejected. Failures wrap domain.ErrDateParse so the
// caller can re-prompt the user.
func ParseBirthDate(s string) (BirthDate, error) {
	for _, layout := range acceptedLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return BirthDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}, nil
	}
	return BirthDate{}, fmt.Errorf("parse %q: %w", s, domain.ErrDateParse)
}

// Calculate turns a birth date string and a gender tag into a MatrixResult.
// It is a single-shot pure transform: identical inputs always yield
// identical output, and once parsing succeeds no step can fail.
func Calculate(birthDate string, gender model.Gender) (*model.MatrixResult, error) {
	bd, err := ParseBirthDate(birthDate)
	if err != nil {
		return nil, err
	}

	// DDMMYYYY, zero-padded, digit by digit.
	seq := make([]int, 0, 8)
	seq = append(seq, SplitDigits2(bd.Day)...)
	seq = append(seq, SplitDigits2(bd.Month)...)
	seq = append(seq, bd.Year/1000, bd.Year/100%10, bd.Year/10%10, bd.Year%10)

	first := 0
	for _, d := range seq {
		first += d
	}
	second := SumDigits(first)

	var third int
	if bd.Year >= centuryBoundary {
		third = first - centuryControl
	} else {
		// First non-zero digit of the zero-padded day: 15 -> 1, 05 -> 5.
		d := seq[0]
		if d == 0 {
			d = seq[1]
		}
		third = first - 2*d
	}
	// One reduction pass only: 34 -> 7, but 28 -> 10 stays 10.
	fourth := SumDigits(third)

	m := &model.MatrixResult{
		Date:     bd.Canonical(),
		Year:     bd.Year,
		Sequence: seq,
		First:    first,
		Second:   second,
		Third:    third,
		Fourth:   fourth,
		Zodiac:   ZodiacFor(bd.Month, bd.Day),
		Gender:   gender,
	}

	if bd.Year >= centuryBoundary {
		m.Additional = []int{first, second, centuryControl, third, fourth}
	} else {
		m.Additional = []int{first, second, third, fourth}
	}

	full := append([]int(nil), seq...)
	full = append(full, SplitDigits(first)...)
	full = append(full, SplitDigits(second)...)
	if bd.Year >= centuryBoundary {
		full = append(full, 1, 9)
	}
	full = append(full, SplitDigits(third)...)
	full = append(full, SplitDigits(fourth)...)
	if bd.Year >= extraNineYear {
		full = append(full, 9)
	}
	m.FullDigits = full

	for _, d := range full {
		if d >= 0 && d <= 9 {
			m.Cells[d]++
		}
	}
	return m, nil
}

const (
	centuryBoundary = 2000
	extraNineYear   = 2020
)

// SplitDigits2 splits a two-digit field (day or month) into exactly two
// digits, keeping the leading zero: 5 -> [0 5].
func SplitDigits2(n int) []int {
	return []int{n / 10 % 10, n % 10}
}
