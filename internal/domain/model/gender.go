package model

import (
	"strings"

	"telegram-numerology-bot/internal/domain"
)

// Gender selects the interpretation branch for digits whose meaning is
// curated separately for men and women.
type Gender string

const (
	GenderMale   Gender = "men"
	GenderFemale Gender = "women"
)

// ParseGender normalizes free-form user input (Russian keyboard labels or
// English words) into a Gender tag.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men", "male", "m", "мужской", "муж", "м":
		return GenderMale, nil
	case "women", "female", "f", "женский", "жен", "ж":
		return GenderFemale, nil
	}
	return "", domain.ErrInvalidArgument
}

// Label returns the user-facing Russian label.
func (g Gender) Label() string {
	if g == GenderMale {
		return "Мужской"
	}
	return "Женский"
}
