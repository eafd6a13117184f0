package handanalyzer

import "strconv"

// Score ranks an evaluated hand
// Scores compare element by element and a higher score is always the better hand,
// including for lowball evaluations
type Score []int

// Compare returns 1 if s beats o, -1 if o beats s, and 0 on a tie
func (s Score) Compare(o Score) int {
	for i := 0; i < len(s) && i < len(o); i++ {
		if s[i] > o[i] {
			return 1
		} else if s[i] < o[i] {
			return -1
		}
	}

	switch {
	case len(s) > len(o):
		return 1
	case len(s) < len(o):
		return -1
	}

	return 0
}

// Beats returns true if s is strictly better than o
func (s Score) Beats(o Score) bool {
	return s.Compare(o) > 0
}

// String returns the score as dotted numbers, i.e., "6.13.5"
func (s Score) String() string {
	b := make([]byte, 0, len(s)*3)
	for i, v := range s {
		if i > 0 {
			b = append(b, '.')
		}

		b = strconv.AppendInt(b, int64(v), 10)
	}

	return string(b)
}

func negate(values []int) Score {
	s := make(Score, len(values))
	for i, v := range values {
		s[i] = -v
	}

	return s
}
