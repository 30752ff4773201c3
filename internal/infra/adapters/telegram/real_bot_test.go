//go:build !integration

package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessage(t *testing.T) {
	t.Run("short text stays in one chunk", func(t *testing.T) {
		got := splitMessage("привет", 100)
		if len(got) != 1 || got[0] != "привет" {
			t.Errorf("unexpected chunks: %q", got)
		}
	})

	t.Run("long text is split under the limit", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 200; i++ {
			b.WriteString("строка с разбором матрицы номер несколько\n")
		}
		chunks := splitMessage(b.String(), 500)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, c := range chunks {
			if n := utf8.RuneCountInString(c); n > 500 {
				t.Errorf("chunk %d exceeds limit: %d runes", i, n)
			}
		}
	})

	t.Run("splits on line boundaries when possible", func(t *testing.T) {
		text := strings.Repeat("0123456789\n", 30)
		for _, c := range splitMessage(text, 100) {
			for _, line := range strings.Split(c, "\n") {
				if line != "" && line != "0123456789" {
					t.Fatalf("line torn apart: %q", line)
				}
			}
		}
	})

	t.Run("handles text without newlines", func(t *testing.T) {
		text := strings.Repeat("ж", 250)
		chunks := splitMessage(text, 100)
		var total int
		for _, c := range chunks {
			total += utf8.RuneCountInString(c)
		}
		if total != 250 {
			t.Errorf("runes lost in split: %d of 250", total)
		}
	})
}
