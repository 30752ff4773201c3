package model

// MatrixResult bundles everything derived from a single birth date: the raw
// digit sequence, the additional numbers, the digit-frequency cells of the
// Pythagorean square, the zodiac sign and the gender tag supplied by the
// caller. It is a value object: built once by the calculator and never
// mutated afterwards.
type MatrixResult struct {
	Date string // canonical DD.MM.YYYY
	Year int

	// Sequence is the 8 digits of the zero-padded date (DDMMYYYY).
	Sequence []int

	First  int
	Second int
	Third  int
	Fourth int

	// Additional is the display row of additional numbers. For years >= 2000
	// it carries the constant 19 between Second and Third.
	Additional []int

	// FullDigits is Sequence plus the digits of every additional number; the
	// multiset that drives all cell counts and interpretation lookups.
	FullDigits []int

	// Cells[d] is the occurrence count of digit d in FullDigits. Index 0 is
	// tracked but never placed in the 3x3 grid.
	Cells [10]int

	Zodiac Zodiac
	Gender Gender
}

// Count returns the number of occurrences of digit d (0..9) in the full
// digit array.
func (m *MatrixResult) Count(d int) int {
	if d < 0 || d > 9 {
		return 0
	}
	return m.Cells[d]
}
