//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/interpret"
	"telegram-numerology-bot/internal/usecase"
)

func seedProfile(t *testing.T, repo *MockProfileRepo, tgID int64, date string, g model.Gender) {
	t.Helper()
	p := &model.UserProfile{ID: "seed", TelegramID: tgID, BirthDate: date, Gender: g}
	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func TestMatrixUseCase_Full(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	interp, err := interpret.New()
	if err != nil {
		t.Fatalf("load interpreter: %v", err)
	}

	t.Run("should render the full report for a complete profile", func(t *testing.T) {
		repo := NewMockProfileRepo()
		seedProfile(t, repo, 100, "15.05.1990", model.GenderFemale)
		uc := usecase.NewMatrixUseCase(repo, interp, testLogger)

		report, err := uc.Full(ctx, 100)
		if err != nil {
			t.Fatalf("Full failed: %v", err)
		}
		for _, want := range []string{"15.05.1990", "Телец", "30.3.28.10", "НУМЕРОЛОГИЧЕСКАЯ МАТРИЦА"} {
			if !strings.Contains(report, want) {
				t.Errorf("report missing %q", want)
			}
		}
	})

	t.Run("should fail for an unknown user", func(t *testing.T) {
		uc := usecase.NewMatrixUseCase(NewMockProfileRepo(), interp, testLogger)

		if _, err := uc.Full(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("should fail for a profile without birth data", func(t *testing.T) {
		repo := NewMockProfileRepo()
		repo.Save(ctx, &model.UserProfile{ID: "p", TelegramID: 101})
		uc := usecase.NewMatrixUseCase(repo, interp, testLogger)

		if _, err := uc.Full(ctx, 101); !errors.Is(err, domain.ErrProfileIncomplete) {
			t.Errorf("expected ErrProfileIncomplete, got %v", err)
		}
	})
}

func TestMatrixUseCase_GridOnly(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	interp, err := interpret.New()
	if err != nil {
		t.Fatalf("load interpreter: %v", err)
	}

	repo := NewMockProfileRepo()
	seedProfile(t, repo, 200, "15.05.1990", model.GenderMale)
	uc := usecase.NewMatrixUseCase(repo, interp, testLogger)

	out, err := uc.GridOnly(ctx, 200)
	if err != nil {
		t.Fatalf("GridOnly failed: %v", err)
	}
	if !strings.Contains(out, "30.3.28.10") {
		t.Errorf("grid output missing additional numbers:\n%s", out)
	}
	if !strings.Contains(out, "Телец") {
		t.Error("grid output missing zodiac sign")
	}
	// Two nines and four zeros in the full digit array for this date.
	if !strings.Contains(out, "9 — 2") {
		t.Errorf("grid output missing the nines count:\n%s", out)
	}
	if strings.Contains(out, "НУМЕРОЛОГИЧЕСКАЯ МАТРИЦА") {
		t.Error("short report should not include the interpretation header")
	}
}
