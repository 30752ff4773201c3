package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"telegram-numerology-bot/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*FailoverAdapter)(nil)

// FailoverAdapter tries each provider in order until one answers. The
// horoscope flow is best-effort, so a full chain failure is reported as one
// combined error and the caller simply ships a horoscope without AI text.
type FailoverAdapter struct {
	chain []adapter.AIServiceAdapter
}

func NewFailoverAdapter(chain ...adapter.AIServiceAdapter) *FailoverAdapter {
	compact := make([]adapter.AIServiceAdapter, 0, len(chain))
	for _, a := range chain {
		if a != nil {
			compact = append(compact, a)
		}
	}
	return &FailoverAdapter{chain: compact}
}

func (f *FailoverAdapter) Name() string {
	names := make([]string, len(f.chain))
	for i, a := range f.chain {
		names[i] = a.Name()
	}
	return strings.Join(names, ">")
}

func (f *FailoverAdapter) ListModels(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for _, a := range f.chain {
		list, _ := a.ListModels(ctx)
		for _, name := range list {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func (f *FailoverAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	if len(f.chain) == 0 {
		return "", errors.New("no ai provider configured")
	}
	var errs []error
	for _, a := range f.chain {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		text, err := a.Chat(ctx, model, messages)
		if err == nil {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
		// Provider-specific model names do not transfer down the chain.
		model = ""
	}
	return "", errors.Join(errs...)
}
