package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/domain/ports/repository"
	"telegram-numerology-bot/internal/infra/logging"
	"telegram-numerology-bot/internal/infra/metrics"
	"telegram-numerology-bot/internal/interpret"
	"telegram-numerology-bot/internal/numerology"
)

var _ MatrixUseCase = (*matrixUC)(nil)

// MatrixUseCase builds the matrix reports for a saved profile.
type MatrixUseCase interface {
	// Full returns the complete interpretation report.
	Full(ctx context.Context, tgID int64) (string, error)
	// GridOnly returns the short report with the grid and digit counts.
	GridOnly(ctx context.Context, tgID int64) (string, error)
	// Result recalculates the matrix for the stored birth data.
	Result(ctx context.Context, tgID int64) (*model.MatrixResult, error)
}

type matrixUC struct {
	profiles    repository.ProfileRepository
	interpreter *interpret.Interpreter
	log         *zerolog.Logger
}

func NewMatrixUseCase(profiles repository.ProfileRepository, interp *interpret.Interpreter, logger *zerolog.Logger) *matrixUC {
	return &matrixUC{profiles: profiles, interpreter: interp, log: logger}
}

func (u *matrixUC) Result(ctx context.Context, tgID int64) (*model.MatrixResult, error) {
	p, err := u.profiles.FindByTelegramID(ctx, tgID)
	if err != nil {
		return nil, err
	}
	if !p.HasBirthData() {
		return nil, domain.ErrProfileIncomplete
	}
	m, err := numerology.Calculate(p.BirthDate, p.Gender)
	if err != nil {
		metrics.IncMatrixCalc(false)
		return nil, err
	}
	metrics.IncMatrixCalc(true)
	return m, nil
}

func (u *matrixUC) Full(ctx context.Context, tgID int64) (string, error) {
	defer logging.TraceDuration(u.log, "MatrixUC.Full")()

	m, err := u.Result(ctx, tgID)
	if err != nil {
		return "", err
	}
	report := u.interpreter.FullReport(m)
	metrics.IncReportBuilt()
	return report, nil
}

func (u *matrixUC) GridOnly(ctx context.Context, tgID int64) (string, error) {
	defer logging.TraceDuration(u.log, "MatrixUC.GridOnly")()

	m, err := u.Result(ctx, tgID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Дата рождения: %s\n", m.Date)
	fmt.Fprintf(&b, "♈ Знак зодиака: %s\n\n", m.Zodiac)
	fmt.Fprintf(&b, "Дополнительные числа: %s\n\n", interpret.JoinNumbers(m.Additional))
	b.WriteString(numerology.RenderGrid(m))
	b.WriteString("\n\nКоличество цифр:\n")
	for d := 1; d <= 9; d++ {
		fmt.Fprintf(&b, "%d — %d\n", d, m.Count(d))
	}
	metrics.IncReportBuilt()
	return b.String(), nil
}
