// Package numerology implements the Pythagorean square calculation: a birth
// date is reduced to a digit sequence, four additional numbers and a
// frequency table over the digits 1-9. Every function here is pure and safe
// for concurrent use.
package numerology

// SumDigits returns the sum of the decimal digits of n. Negative inputs are
// summed by absolute value. One pass only: no repeated reduction.
func SumDigits(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// SplitDigits returns the decimal digits of n in order, most significant
// first. Negative inputs are split by absolute value; zero yields [0].
func SplitDigits(n int) []int {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return []int{0}
	}
	var rev []int
	for n > 0 {
		rev = append(rev, n%10)
		n /= 10
	}
	out := make([]int, len(rev))
	for i, d := range rev {
		out[len(rev)-1-i] = d
	}
	return out
}
