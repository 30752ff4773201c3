package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/domain/ports/repository"
	"telegram-numerology-bot/internal/infra/logging"
	"telegram-numerology-bot/internal/infra/metrics"
	"telegram-numerology-bot/internal/numerology"
)

// Compile-time check
var _ ProfileUseCase = (*profileUC)(nil)

// ProfileUseCase exposes user profile operations used by the bot flows.
type ProfileUseCase interface {
	RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.UserProfile, error)
	SetBirthData(ctx context.Context, tgID int64, username, date, gender string) (*model.MatrixResult, error)
	Get(ctx context.Context, tgID int64) (*model.UserProfile, error)
	Count(ctx context.Context) (int, error)
}

type profileUC struct {
	profiles repository.ProfileRepository
	log      *zerolog.Logger
}

func NewProfileUseCase(profiles repository.ProfileRepository, logger *zerolog.Logger) *profileUC {
	return &profileUC{profiles: profiles, log: logger}
}

func (u *profileUC) RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.UserProfile, error) {
	defer logging.TraceDuration(u.log, "ProfileUC.RegisterOrFetch")()

	p, err := u.profiles.FindByTelegramID(ctx, tgID)
	if err == nil {
		if username != "" && p.Username != username {
			p.Username = username
		}
		p.Touch()
		if err := u.profiles.Save(ctx, p); err != nil {
			u.log.Error().Err(err).Int64("tg_id", tgID).Msg("failed to update profile")
			return nil, err
		}
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	np, err := model.NewUserProfile("", tgID, username)
	if err != nil {
		return nil, err
	}
	if err := u.profiles.Save(ctx, np); err != nil {
		return nil, err
	}
	u.log.Info().Int64("tg_id", tgID).Msg("new profile registered")
	return np, nil
}

// SetBirthData validates the entered date and gender by running the matrix
// calculation, then persists both on the profile. The computed result is
// returned so the caller can greet the user with their zodiac sign without
// a second calculation.
func (u *profileUC) SetBirthData(ctx context.Context, tgID int64, username, date, gender string) (*model.MatrixResult, error) {
	defer logging.TraceDuration(u.log, "ProfileUC.SetBirthData")()

	g, err := model.ParseGender(gender)
	if err != nil {
		return nil, fmt.Errorf("gender %q: %w", gender, err)
	}
	m, err := numerology.Calculate(date, g)
	if err != nil {
		metrics.IncMatrixCalc(false)
		return nil, err
	}
	metrics.IncMatrixCalc(true)

	p, err := u.RegisterOrFetch(ctx, tgID, username)
	if err != nil {
		return nil, err
	}
	p.BirthDate = m.Date
	p.Gender = g
	p.Touch()
	if err := u.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *profileUC) Get(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	return u.profiles.FindByTelegramID(ctx, tgID)
}

func (u *profileUC) Count(ctx context.Context) (int, error) {
	return u.profiles.Count(ctx)
}
