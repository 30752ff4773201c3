package model

import (
	"time"

	"telegram-numerology-bot/internal/domain"

	"github.com/google/uuid"
)

// UserProfile is a domain entity representing a Telegram user and the birth
// data they entered through the dialogue. The computed matrix is never
// stored: the calculator is pure and cheap, so it is recomputed on demand.
type UserProfile struct {
	ID           string
	TelegramID   int64
	Username     string
	BirthDate    string // DD.MM.YYYY, empty until the dialogue completes
	Gender       Gender
	RegisteredAt time.Time
	LastActiveAt time.Time
}

func NewUserProfile(id string, tgID int64, username string) (*UserProfile, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &UserProfile{
		ID:           id,
		TelegramID:   tgID,
		Username:     username,
		RegisteredAt: now,
		LastActiveAt: now,
	}, nil
}

func (p *UserProfile) IsZero() bool { return p == nil || p.ID == "" }

func (p *UserProfile) HasBirthData() bool {
	return p != nil && p.BirthDate != "" && p.Gender != ""
}

func (p *UserProfile) Touch() { p.LastActiveAt = time.Now() }
