package repository

import (
	"context"

	"telegram-numerology-bot/internal/domain/model"
)

// ProfileRepository persists user profiles keyed by Telegram ID.
type ProfileRepository interface {
	Save(ctx context.Context, p *model.UserProfile) error
	FindByTelegramID(ctx context.Context, tgID int64) (*model.UserProfile, error)
	Count(ctx context.Context) (int, error)
}
