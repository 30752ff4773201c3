//go:build !integration

package numerology

import (
	"strings"
	"testing"

	"telegram-numerology-bot/internal/domain/model"
)

func TestRenderGrid(t *testing.T) {
	m, err := Calculate("15.05.1990", model.GenderMale)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	grid := RenderGrid(m)

	t.Run("idempotent", func(t *testing.T) {
		if again := RenderGrid(m); again != grid {
			t.Error("repeated rendering of the same result differs")
		}
	})

	t.Run("frame and layout", func(t *testing.T) {
		lines := strings.Split(grid, "\n")
		if len(lines) != 13 {
			t.Fatalf("expected 13 lines, got %d", len(lines))
		}
		if lines[0] != gridTop || lines[len(lines)-1] != gridBot {
			t.Error("grid frame corners are wrong")
		}
	})

	t.Run("cells repeat their digit", func(t *testing.T) {
		// 15.05.1990 has two nines; the 9 cell sits in the last content row.
		lines := strings.Split(grid, "\n")
		last := lines[11]
		if !strings.Contains(last, "9 9") {
			t.Errorf("expected cell %q to contain \"9 9\"", last)
		}
	})

	t.Run("empty cells show a placeholder", func(t *testing.T) {
		// 15.05.1990 has no 4, 6 or 7.
		if !strings.Contains(grid, "—") {
			t.Error("expected an em dash placeholder for empty cells")
		}
	})

	t.Run("zero digits never reach the grid", func(t *testing.T) {
		if m.Count(0) == 0 {
			t.Fatal("fixture should contain zeros")
		}
		if strings.Contains(grid, "0") {
			t.Error("grid must only show digits 1-9")
		}
	})
}
