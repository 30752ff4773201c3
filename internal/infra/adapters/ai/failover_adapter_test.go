//go:build !integration

package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"telegram-numerology-bot/internal/domain/ports/adapter"
	ai "telegram-numerology-bot/internal/infra/adapters/ai"
)

type stubAI struct {
	name      string
	reply     string
	err       error
	chatN     int
	lastModel string
}

func (s *stubAI) Name() string { return s.name }

func (s *stubAI) ListModels(ctx context.Context) ([]string, error) {
	return []string{s.name + "-model"}, nil
}

func (s *stubAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	s.chatN++
	s.lastModel = model
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestFailoverAdapter_Chat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first provider answering wins", func(t *testing.T) {
		first := &stubAI{name: "groq", reply: "from groq"}
		second := &stubAI{name: "gemini", reply: "from gemini"}
		f := ai.NewFailoverAdapter(first, second)

		got, err := f.Chat(ctx, "llama", nil)
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if got != "from groq" {
			t.Errorf("unexpected reply %q", got)
		}
		if second.chatN != 0 {
			t.Errorf("second provider should not be called, called %d times", second.chatN)
		}
	})

	t.Run("falls through to the next provider without the model name", func(t *testing.T) {
		first := &stubAI{name: "groq", err: errors.New("rate limited")}
		second := &stubAI{name: "gemini", reply: "from gemini"}
		f := ai.NewFailoverAdapter(first, second)

		got, err := f.Chat(ctx, "llama-3.1", nil)
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if got != "from gemini" {
			t.Errorf("unexpected reply %q", got)
		}
		if second.lastModel != "" {
			t.Errorf("provider-specific model leaked down the chain: %q", second.lastModel)
		}
	})

	t.Run("combines errors when the whole chain fails", func(t *testing.T) {
		first := &stubAI{name: "groq", err: errors.New("down")}
		second := &stubAI{name: "gemini", err: errors.New("quota")}
		f := ai.NewFailoverAdapter(first, second)

		_, err := f.Chat(ctx, "x", nil)
		if err == nil {
			t.Fatal("expected an error")
		}
		for _, want := range []string{"groq", "gemini"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("combined error missing %q: %v", want, err)
			}
		}
	})

	t.Run("nil providers are skipped at construction", func(t *testing.T) {
		f := ai.NewFailoverAdapter(nil, &stubAI{name: "gemini", reply: "ok"}, nil)
		if f.Name() != "gemini" {
			t.Errorf("unexpected chain name %q", f.Name())
		}
	})

	t.Run("empty chain reports a configuration error", func(t *testing.T) {
		f := ai.NewFailoverAdapter()
		if _, err := f.Chat(ctx, "x", nil); err == nil {
			t.Error("expected an error from an empty chain")
		}
	})
}

func TestFailoverAdapter_ListModels(t *testing.T) {
	t.Parallel()
	f := ai.NewFailoverAdapter(&stubAI{name: "groq"}, &stubAI{name: "gemini"})

	models, err := f.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(models) != 2 {
		t.Errorf("expected models from both providers, got %v", models)
	}
}
