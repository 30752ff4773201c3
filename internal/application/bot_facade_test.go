//go:build !integration

package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"telegram-numerology-bot/internal/application"
	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/domain/ports/repository"
	"telegram-numerology-bot/internal/numerology"
)

// simple mock profile usecase implementing the methods used by BotFacade
type mockProfileUC struct {
	registered map[int64]string
	setDate    string
	setGender  string
	setErr     error
}

func newMockProfileUC() *mockProfileUC {
	return &mockProfileUC{registered: make(map[int64]string)}
}

func (m *mockProfileUC) RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.UserProfile, error) {
	m.registered[tgID] = username
	return &model.UserProfile{ID: "p", TelegramID: tgID, Username: username}, nil
}

func (m *mockProfileUC) SetBirthData(ctx context.Context, tgID int64, username, date, gender string) (*model.MatrixResult, error) {
	if m.setErr != nil {
		return nil, m.setErr
	}
	g, err := model.ParseGender(gender)
	if err != nil {
		return nil, err
	}
	m.setDate, m.setGender = date, string(g)
	return numerology.Calculate(date, g)
}

func (m *mockProfileUC) Get(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	return nil, domain.ErrNotFound
}

func (m *mockProfileUC) Count(ctx context.Context) (int, error) { return len(m.registered), nil }

type mockMatrixUC struct {
	full, grid string
	err        error
}

func (m *mockMatrixUC) Full(ctx context.Context, tgID int64) (string, error) {
	return m.full, m.err
}

func (m *mockMatrixUC) GridOnly(ctx context.Context, tgID int64) (string, error) {
	return m.grid, m.err
}

func (m *mockMatrixUC) Result(ctx context.Context, tgID int64) (*model.MatrixResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return numerology.Calculate("15.05.1990", model.GenderFemale)
}

type mockHoroscopeUC struct {
	text string
	err  error
}

func (m *mockHoroscopeUC) Daily(ctx context.Context, tgID int64) (string, error) {
	return m.text, m.err
}

type memStateRepo struct {
	store map[int64]*repository.ConversationState
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{store: make(map[int64]*repository.ConversationState)}
}

func (m *memStateRepo) SetState(ctx context.Context, tgID int64, st *repository.ConversationState) error {
	cp := *st
	m.store[tgID] = &cp
	return nil
}

func (m *memStateRepo) GetState(ctx context.Context, tgID int64) (*repository.ConversationState, error) {
	st, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *memStateRepo) ClearState(ctx context.Context, tgID int64) error {
	delete(m.store, tgID)
	return nil
}

func newFacade(profiles *mockProfileUC, matrix *mockMatrixUC, horo *mockHoroscopeUC, states *memStateRepo) *application.BotFacade {
	return application.NewBotFacade(profiles, matrix, horo, states)
}

func TestBotFacade_Dialogue(t *testing.T) {
	ctx := context.Background()

	t.Run("start opens the date step", func(t *testing.T) {
		profiles := newMockProfileUC()
		states := newMemStateRepo()
		f := newFacade(profiles, &mockMatrixUC{}, &mockHoroscopeUC{}, states)

		r, err := f.HandleStart(ctx, 1, "alice")
		if err != nil {
			t.Fatalf("HandleStart failed: %v", err)
		}
		if r.Step != application.StepAwaitingDate {
			t.Errorf("expected date step, got %q", r.Step)
		}
		if profiles.registered[1] != "alice" {
			t.Error("user not registered")
		}
		if f.Step(ctx, 1) != application.StepAwaitingDate {
			t.Error("state not persisted")
		}
	})

	t.Run("valid date advances to the gender step", func(t *testing.T) {
		states := newMemStateRepo()
		f := newFacade(newMockProfileUC(), &mockMatrixUC{}, &mockHoroscopeUC{}, states)
		f.HandleStart(ctx, 2, "bob")

		r, err := f.HandleDateInput(ctx, 2, "15.05.1990")
		if err != nil {
			t.Fatalf("HandleDateInput failed: %v", err)
		}
		if r.Step != application.StepAwaitingGender {
			t.Errorf("expected gender step, got %q", r.Step)
		}
		st, _ := states.GetState(ctx, 2)
		if st.Data["birth_date"] != "15.05.1990" {
			t.Errorf("date not stored in state: %v", st.Data)
		}
	})

	t.Run("date in ISO form is canonicalized in state", func(t *testing.T) {
		states := newMemStateRepo()
		f := newFacade(newMockProfileUC(), &mockMatrixUC{}, &mockHoroscopeUC{}, states)
		f.HandleStart(ctx, 3, "")

		if _, err := f.HandleDateInput(ctx, 3, "1990-05-15"); err != nil {
			t.Fatal(err)
		}
		st, _ := states.GetState(ctx, 3)
		if st.Data["birth_date"] != "15.05.1990" {
			t.Errorf("expected canonical date, got %q", st.Data["birth_date"])
		}
	})

	t.Run("bad date keeps the user on the date step", func(t *testing.T) {
		f := newFacade(newMockProfileUC(), &mockMatrixUC{}, &mockHoroscopeUC{}, newMemStateRepo())
		f.HandleStart(ctx, 4, "")

		r, err := f.HandleDateInput(ctx, 4, "tomorrow")
		if err != nil {
			t.Fatalf("bad date should not error the update: %v", err)
		}
		if r.Step != application.StepAwaitingDate {
			t.Errorf("expected to stay on date step, got %q", r.Step)
		}
		if !strings.Contains(r.Text, "ДД.ММ.ГГГГ") {
			t.Error("hint should mention the expected format")
		}
	})

	t.Run("gender choice completes the dialogue", func(t *testing.T) {
		profiles := newMockProfileUC()
		states := newMemStateRepo()
		f := newFacade(profiles, &mockMatrixUC{}, &mockHoroscopeUC{}, states)
		f.HandleStart(ctx, 5, "carol")
		f.HandleDateInput(ctx, 5, "15.05.1990")

		r, err := f.HandleGenderInput(ctx, 5, "carol", "Женский")
		if err != nil {
			t.Fatalf("HandleGenderInput failed: %v", err)
		}
		if r.Step != application.StepNone {
			t.Errorf("dialogue should be closed, step %q", r.Step)
		}
		if !strings.Contains(r.Text, "Телец") {
			t.Errorf("confirmation should name the sign:\n%s", r.Text)
		}
		if profiles.setDate != "15.05.1990" || profiles.setGender != "women" {
			t.Errorf("birth data not saved: %q %q", profiles.setDate, profiles.setGender)
		}
		if f.Step(ctx, 5) != application.StepNone {
			t.Error("state should be cleared")
		}
	})

	t.Run("unknown gender word re-prompts", func(t *testing.T) {
		f := newFacade(newMockProfileUC(), &mockMatrixUC{}, &mockHoroscopeUC{}, newMemStateRepo())
		f.HandleStart(ctx, 6, "")
		f.HandleDateInput(ctx, 6, "15.05.1990")

		r, err := f.HandleGenderInput(ctx, 6, "", "other")
		if err != nil {
			t.Fatalf("unknown gender should not error the update: %v", err)
		}
		if r.Step != application.StepAwaitingGender {
			t.Errorf("expected to stay on gender step, got %q", r.Step)
		}
	})

	t.Run("text outside a dialogue points to /start", func(t *testing.T) {
		f := newFacade(newMockProfileUC(), &mockMatrixUC{}, &mockHoroscopeUC{}, newMemStateRepo())

		r, err := f.HandleDateInput(ctx, 7, "15.05.1990")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(r.Text, "/start") {
			t.Errorf("expected a /start hint, got %q", r.Text)
		}
	})
}

func TestBotFacade_Reports(t *testing.T) {
	ctx := context.Background()

	t.Run("full matrix forwards the report", func(t *testing.T) {
		f := newFacade(newMockProfileUC(), &mockMatrixUC{full: "FULL REPORT"}, &mockHoroscopeUC{}, newMemStateRepo())

		r, err := f.HandleFullMatrix(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if r.Text != "FULL REPORT" {
			t.Errorf("unexpected text %q", r.Text)
		}
	})

	t.Run("missing birth data turns into a friendly hint", func(t *testing.T) {
		f := newFacade(newMockProfileUC(), &mockMatrixUC{err: domain.ErrProfileIncomplete}, &mockHoroscopeUC{}, newMemStateRepo())

		r, err := f.HandleFullMatrix(ctx, 1)
		if err != nil {
			t.Fatalf("incomplete profile should not error the update: %v", err)
		}
		if !strings.Contains(r.Text, "/start") {
			t.Errorf("expected a /start hint, got %q", r.Text)
		}
	})

	t.Run("unexpected errors propagate", func(t *testing.T) {
		boom := errors.New("db down")
		f := newFacade(newMockProfileUC(), &mockMatrixUC{err: boom}, &mockHoroscopeUC{}, newMemStateRepo())

		if _, err := f.HandleGridOnly(ctx, 1); !errors.Is(err, boom) {
			t.Errorf("expected the underlying error, got %v", err)
		}
	})

	t.Run("empty horoscope day is reported politely", func(t *testing.T) {
		f := newFacade(newMockProfileUC(), &mockMatrixUC{}, &mockHoroscopeUC{err: domain.ErrNoHoroscope}, newMemStateRepo())

		r, err := f.HandleHoroscope(ctx, 1)
		if err != nil {
			t.Fatalf("no-horoscope day should not error the update: %v", err)
		}
		if !strings.Contains(r.Text, "недоступен") {
			t.Errorf("unexpected text %q", r.Text)
		}
	})
}
