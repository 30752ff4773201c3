// Package interpret maps a computed matrix onto curated human-readable
// texts. The tables are static reference data embedded at build time; a
// missing key is never an error, the report simply omits that section.
package interpret

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"telegram-numerology-bot/internal/domain/model"

	"gopkg.in/yaml.v3"
)

//go:embed data
var dataFS embed.FS

// Entry is one interpretation: either a plain text or a men/women pair.
type Entry struct {
	Text  string
	Men   string
	Women string
}

// UnmarshalYAML accepts both table shapes: a scalar string or a map with
// men/women branches.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Text)
	}
	var split struct {
		Men   string `yaml:"men"`
		Women string `yaml:"women"`
	}
	if err := value.Decode(&split); err != nil {
		return err
	}
	e.Men, e.Women = split.Men, split.Women
	return nil
}

// resolve picks the branch for the requested gender, falling back to the
// women branch and then to whatever text exists.
func (e Entry) resolve(g model.Gender) string {
	if e.Text != "" {
		return e.Text
	}
	if g == model.GenderMale && e.Men != "" {
		return e.Men
	}
	if e.Women != "" {
		return e.Women
	}
	return e.Men
}

// Interpreter serves lookups against the embedded tables. Immutable after
// construction, safe for concurrent use.
type Interpreter struct {
	matrix map[string]Entry
	tasks  map[string]string
}

// New loads the embedded tables.
func New() (*Interpreter, error) {
	return NewFromFS(dataFS)
}

// NewFromFS loads tables from any fs.FS; tests feed it small fixtures.
func NewFromFS(fsys fs.FS) (*Interpreter, error) {
	in := &Interpreter{}

	b, err := fs.ReadFile(fsys, "data/matrix.yaml")
	if err != nil {
		return nil, fmt.Errorf("read matrix table: %w", err)
	}
	if err := yaml.Unmarshal(b, &in.matrix); err != nil {
		return nil, fmt.Errorf("parse matrix table: %w", err)
	}

	b, err = fs.ReadFile(fsys, "data/tasks.yaml")
	if err != nil {
		return nil, fmt.Errorf("read tasks table: %w", err)
	}
	if err := yaml.Unmarshal(b, &in.tasks); err != nil {
		return nil, fmt.Errorf("parse tasks table: %w", err)
	}
	return in, nil
}

// LookupKey builds the canonical table key for a digit and its occurrence
// count: "10" for an absent 1, "111" for three ones. Counts above five use
// the overflow part only ("1" for six ones), keeping the curated key space
// bounded.
func LookupKey(digit, count int) string {
	d := strconv.Itoa(digit)
	switch {
	case count <= 0:
		return d + "0"
	case count > 5:
		return strings.Repeat(d, count-5)
	default:
		return strings.Repeat(d, count)
	}
}

// MatrixValue returns the interpretation for a digit with the given
// occurrence count, resolved for the gender. Empty string on a miss.
func (i *Interpreter) MatrixValue(digit, count int, g model.Gender) string {
	e, ok := i.matrix[LookupKey(digit, count)]
	if !ok {
		return ""
	}
	return e.resolve(g)
}

// TaskValue returns the soul/family task text for a single-digit additional
// number. Multi-digit numbers (a non-reduced fourth like 10) miss silently.
func (i *Interpreter) TaskValue(n int) string {
	return i.tasks[strconv.Itoa(n)]
}

// FullReport assembles the complete textual reading in fixed order: header,
// additional numbers, soul task, family task, then each digit 1-9 with its
// count and prose. Output is plain text; any chat markup or message-size
// truncation belongs to the transport layer.
func (i *Interpreter) FullReport(m *model.MatrixResult) string {
	var sb strings.Builder

	sb.WriteString("🔮 НУМЕРОЛОГИЧЕСКАЯ МАТРИЦА 🔮\n\n")
	sb.WriteString("📅 Дата рождения: " + m.Date + "\n")
	sb.WriteString("♈ Знак зодиака: " + string(m.Zodiac) + "\n")
	sb.WriteString("⚧ Пол: " + m.Gender.Label() + "\n\n")
	sb.WriteString("🔢 Дополнительные числа: " + JoinNumbers(m.Additional) + "\n")

	if task := i.TaskValue(m.Second); task != "" {
		sb.WriteString("\n🌟 Личная задача Души 🌟\n")
		sb.WriteString(task + "\n")
	}
	if task := i.TaskValue(m.Fourth); task != "" {
		sb.WriteString("\n👨‍👩‍👧‍👦 Родовая задача. ЧРП 👨‍👩‍👧‍👦\n")
		sb.WriteString(task + "\n")
	}

	sb.WriteString("\n📊 ЗНАЧЕНИЯ ЦИФР В МАТРИЦЕ 📊\n")
	for d := 1; d <= 9; d++ {
		count := m.Count(d)
		sb.WriteString(fmt.Sprintf("\n🔸 Цифра %d — количество: %d\n", d, count))
		if text := i.MatrixValue(d, count, m.Gender); text != "" {
			sb.WriteString(text + "\n")
		}
	}
	return sb.String()
}

// JoinNumbers renders the additional-numbers row dot-joined: "30.3.28.10".
func JoinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
