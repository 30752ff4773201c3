//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/domain/ports/adapter"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// -----------------------------
// Mock ProfileRepository
// -----------------------------

type MockProfileRepo struct {
	mu      sync.RWMutex
	store   map[int64]*model.UserProfile
	saveErr error // set by tests to simulate save failures
}

func NewMockProfileRepo() *MockProfileRepo {
	return &MockProfileRepo{store: make(map[int64]*model.UserProfile)}
}

func (m *MockProfileRepo) Save(ctx context.Context, p *model.UserProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	m.store[p.TelegramID] = &cp
	return nil
}

func (m *MockProfileRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileRepo) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// -----------------------------
// Mock HoroscopeCache
// -----------------------------

type MockHoroscopeCache struct {
	mu     sync.RWMutex
	store  map[string]*model.DailyHoroscope
	getErr error
	setErr error
	sets   int
}

func NewMockHoroscopeCache() *MockHoroscopeCache {
	return &MockHoroscopeCache{store: make(map[string]*model.DailyHoroscope)}
}

func cacheKey(z model.Zodiac, day string) string { return string(z) + "|" + day }

func (m *MockHoroscopeCache) Get(ctx context.Context, z model.Zodiac, day string) (*model.DailyHoroscope, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.store[cacheKey(z, day)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *MockHoroscopeCache) Set(ctx context.Context, h *model.DailyHoroscope) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *h
	m.store[cacheKey(h.Zodiac, h.Date)] = &cp
	m.sets++
	return nil
}

// -----------------------------
// Mock SignScraper
// -----------------------------

type MockScraper struct {
	mu       sync.Mutex
	excerpts []model.SourceExcerpt
	calls    int
}

func (m *MockScraper) Scrape(ctx context.Context, z model.Zodiac) []model.SourceExcerpt {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.excerpts
}

func (m *MockScraper) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// -----------------------------
// Mock AIServiceAdapter
// -----------------------------

type MockAIAdapter struct {
	reply string
	err   error
	calls int

	lastModel  string
	lastPrompt string
}

func (m *MockAIAdapter) Name() string { return "mock-ai" }

func (m *MockAIAdapter) ListModels(ctx context.Context) ([]string, error) {
	return []string{"mock-model"}, nil
}

func (m *MockAIAdapter) Chat(ctx context.Context, mdl string, messages []adapter.Message) (string, error) {
	m.calls++
	m.lastModel = mdl
	if len(messages) > 0 {
		m.lastPrompt = messages[len(messages)-1].Content
	}
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}
