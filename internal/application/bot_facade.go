package application

import (
	"context"
	"errors"
	"fmt"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/ports/repository"
	"telegram-numerology-bot/internal/numerology"
	"telegram-numerology-bot/internal/usecase"
)

// Dialogue steps surfaced to the Telegram adapter so it can pick the right
// keyboard for the next message.
const (
	StepNone           = ""
	StepAwaitingDate   = repository.StepAwaitingDate
	StepAwaitingGender = repository.StepAwaitingGender
)

// Reply is what a facade handler hands back to the transport: the text to
// send and the dialogue step the user is in afterwards.
type Reply struct {
	Text string
	Step string
}

// BotFacade composes usecases into high-level bot commands.
// Keep the handlers returning plain replies so the Telegram adapter just
// forwards them to the chat and picks a keyboard by Step.
type BotFacade struct {
	ProfileUC   usecase.ProfileUseCase
	MatrixUC    usecase.MatrixUseCase
	HoroscopeUC usecase.HoroscopeUseCase
	States      repository.StateRepository
}

func NewBotFacade(
	profileUC usecase.ProfileUseCase,
	matrixUC usecase.MatrixUseCase,
	horoscopeUC usecase.HoroscopeUseCase,
	states repository.StateRepository,
) *BotFacade {
	return &BotFacade{
		ProfileUC:   profileUC,
		MatrixUC:    matrixUC,
		HoroscopeUC: horoscopeUC,
		States:      states,
	}
}

// HandleStart registers the user and opens the birth-data dialogue.
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64, username string) (Reply, error) {
	if _, err := b.ProfileUC.RegisterOrFetch(ctx, tgID, username); err != nil {
		return Reply{}, fmt.Errorf("register/fetch profile: %w", err)
	}
	st := &repository.ConversationState{Step: repository.StepAwaitingDate, Data: map[string]string{}}
	if err := b.States.SetState(ctx, tgID, st); err != nil {
		return Reply{}, fmt.Errorf("open dialogue: %w", err)
	}
	text := "👋 Добро пожаловать в нумерологический калькулятор!\n\n" +
		"Я построю вашу матрицу Пифагора, расшифрую её и подготовлю гороскоп на день.\n\n" +
		"Введите дату рождения в формате ДД.ММ.ГГГГ, например 15.05.1990."
	return Reply{Text: text, Step: StepAwaitingDate}, nil
}

// Step returns the user's current dialogue step, StepNone when idle.
func (b *BotFacade) Step(ctx context.Context, tgID int64) string {
	st, err := b.state(ctx, tgID)
	if err != nil || st == nil {
		return StepNone
	}
	return st.Step
}

// state normalizes a cache miss into a nil state.
func (b *BotFacade) state(ctx context.Context, tgID int64) (*repository.ConversationState, error) {
	st, err := b.States.GetState(ctx, tgID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return st, err
}

// HandleDateInput consumes the date message of the dialogue. A bad date keeps
// the user on the same step with a hint instead of failing the update.
func (b *BotFacade) HandleDateInput(ctx context.Context, tgID int64, text string) (Reply, error) {
	st, err := b.state(ctx, tgID)
	if err != nil {
		return Reply{}, fmt.Errorf("dialogue state: %w", err)
	}
	if st == nil || st.Step != repository.StepAwaitingDate {
		return b.notInDialogue(), nil
	}

	bd, err := numerology.ParseBirthDate(text)
	if err != nil {
		return Reply{
			Text: "🤔 Не получилось разобрать дату. Введите её в формате ДД.ММ.ГГГГ, например 15.05.1990.",
			Step: StepAwaitingDate,
		}, nil
	}

	if st.Data == nil {
		st.Data = map[string]string{}
	}
	st.Data["birth_date"] = bd.Canonical()
	st.Step = repository.StepAwaitingGender
	if err := b.States.SetState(ctx, tgID, st); err != nil {
		return Reply{}, fmt.Errorf("advance dialogue: %w", err)
	}
	return Reply{Text: "Отлично! Теперь выберите ваш пол:", Step: StepAwaitingGender}, nil
}

// HandleGenderInput finishes the dialogue: the stored date plus the chosen
// gender become the profile's birth data.
func (b *BotFacade) HandleGenderInput(ctx context.Context, tgID int64, username, text string) (Reply, error) {
	st, err := b.state(ctx, tgID)
	if err != nil {
		return Reply{}, fmt.Errorf("dialogue state: %w", err)
	}
	if st == nil || st.Step != repository.StepAwaitingGender {
		return b.notInDialogue(), nil
	}
	date := st.Data["birth_date"]
	if date == "" {
		// Stale state, restart the dialogue from the date step.
		st = &repository.ConversationState{Step: repository.StepAwaitingDate, Data: map[string]string{}}
		if err := b.States.SetState(ctx, tgID, st); err != nil {
			return Reply{}, err
		}
		return Reply{
			Text: "Кажется, мы потеряли вашу дату. Введите дату рождения ещё раз (ДД.ММ.ГГГГ).",
			Step: StepAwaitingDate,
		}, nil
	}

	m, err := b.ProfileUC.SetBirthData(ctx, tgID, username, date, text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return Reply{
				Text: "Пожалуйста, выберите пол кнопкой: Мужской или Женский.",
				Step: StepAwaitingGender,
			}, nil
		}
		return Reply{}, fmt.Errorf("save birth data: %w", err)
	}
	if err := b.States.ClearState(ctx, tgID); err != nil {
		return Reply{}, fmt.Errorf("close dialogue: %w", err)
	}
	text = fmt.Sprintf(
		"✅ Данные сохранены!\n\n📅 Дата рождения: %s\n♈ Знак зодиака: %s\n\nВыберите, что показать:",
		m.Date, m.Zodiac,
	)
	return Reply{Text: text, Step: StepNone}, nil
}

// HandleFullMatrix returns the complete interpretation report.
func (b *BotFacade) HandleFullMatrix(ctx context.Context, tgID int64) (Reply, error) {
	report, err := b.MatrixUC.Full(ctx, tgID)
	if err != nil {
		return b.reportError(err)
	}
	return Reply{Text: report, Step: StepNone}, nil
}

// HandleGridOnly returns the short grid report.
func (b *BotFacade) HandleGridOnly(ctx context.Context, tgID int64) (Reply, error) {
	report, err := b.MatrixUC.GridOnly(ctx, tgID)
	if err != nil {
		return b.reportError(err)
	}
	return Reply{Text: report, Step: StepNone}, nil
}

// HandleHoroscope returns today's horoscope for the user's sign.
func (b *BotFacade) HandleHoroscope(ctx context.Context, tgID int64) (Reply, error) {
	text, err := b.HoroscopeUC.Daily(ctx, tgID)
	if err != nil {
		if errors.Is(err, domain.ErrNoHoroscope) {
			return Reply{Text: "😔 Сегодня гороскоп недоступен, попробуйте позже."}, nil
		}
		return b.reportError(err)
	}
	return Reply{Text: text, Step: StepNone}, nil
}

// HandleAbout describes what the bot does.
func (b *BotFacade) HandleAbout(ctx context.Context, tgID int64) (Reply, error) {
	text := "ℹ️ Этот бот строит психоматрицу по квадрату Пифагора.\n\n" +
		"По дате рождения вычисляются рабочие числа, матрица из девяти ячеек " +
		"и дополнительные характеристики. Расшифровка учитывает пол, " +
		"а раздел гороскопа собирает прогнозы на день для вашего знака зодиака.\n\n" +
		"Чтобы начать заново с другой датой, отправьте /start."
	return Reply{Text: text, Step: StepNone}, nil
}

func (b *BotFacade) reportError(err error) (Reply, error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrProfileIncomplete):
		return Reply{
			Text: "Сначала введите дату рождения и пол. Отправьте /start, чтобы начать.",
			Step: StepNone,
		}, nil
	}
	return Reply{}, err
}

func (b *BotFacade) notInDialogue() Reply {
	return Reply{
		Text: "Отправьте /start, чтобы ввести дату рождения, или воспользуйтесь кнопками меню.",
		Step: StepNone,
	}
}
