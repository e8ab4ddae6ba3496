package perm

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
)

// Arrangement is an ordered sequence of N distinct symbols from {1..N}.
// The zero value is an empty, invalid arrangement.
type Arrangement struct {
	syms []int
}

// NewArrangement validates symbols and returns them as an Arrangement.
// The input slice is copied.
func NewArrangement(symbols []int) (Arrangement, error) {
	if err := checkPermutation(symbols); err != nil {
		return Arrangement{}, perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "invalid arrangement %s", formatInts(symbols))
	}
	return Arrangement{syms: slices.Clone(symbols)}, nil
}

// ParseArrangement parses the digit or comma-separated form of an arrangement.
func ParseArrangement(s string) (Arrangement, error) {
	vals, err := parseInts(s)
	if err != nil {
		return Arrangement{}, perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "invalid arrangement %q", s)
	}
	if err := checkPermutation(vals); err != nil {
		return Arrangement{}, perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "invalid arrangement %q", s)
	}
	return Arrangement{syms: vals}, nil
}

// MustParseArrangement is like ParseArrangement but panics on error.
// Intended for tests and package-level fixtures.
func MustParseArrangement(s string) Arrangement {
	a, err := ParseArrangement(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the arity N.
func (a Arrangement) Len() int { return len(a.syms) }

// IsZero reports whether a is the zero Arrangement.
func (a Arrangement) IsZero() bool { return len(a.syms) == 0 }

// At returns the symbol at 1-based position i.
func (a Arrangement) At(i int) int { return a.syms[i-1] }

// Symbols returns a copy of the symbols in order.
func (a Arrangement) Symbols() []int { return slices.Clone(a.syms) }

// Equal reports whether a and b hold the same symbol at every position.
func (a Arrangement) Equal(b Arrangement) bool { return slices.Equal(a.syms, b.syms) }

// String returns the digit form for N <= 9 and the comma form otherwise.
func (a Arrangement) String() string { return formatInts(a.syms) }

// Validate checks the permutation invariant. Values built through the
// constructors are always valid; only the zero value fails.
func (a Arrangement) Validate() error {
	if err := checkPermutation(a.syms); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidArrangement, err, "invalid arrangement %s", a)
	}
	return nil
}

var errEmptySequence = errors.New("empty sequence")

// checkPermutation reports whether vals is a permutation of {1..len(vals)}.
func checkPermutation(vals []int) error {
	n := len(vals)
	if n == 0 {
		return errEmptySequence
	}
	seen := make([]bool, n+1)
	for i, v := range vals {
		if v < 1 || v > n {
			return fmt.Errorf("position %d: symbol %d out of range 1..%d", i+1, v, n)
		}
		if seen[v] {
			return fmt.Errorf("position %d: duplicate symbol %d", i+1, v)
		}
		seen[v] = true
	}
	return nil
}

// parseInts accepts "2314" or "2,3,1,4". Whitespace around commas is ignored.
func parseInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptySequence
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		vals := make([]int, len(parts))
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("position %d: not a number: %q", i+1, p)
			}
			vals[i] = v
		}
		return vals, nil
	}

	vals := make([]int, 0, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("position %d: not a digit: %q", i+1, r)
		}
		vals = append(vals, int(r-'0'))
	}
	return vals, nil
}

func formatInts(vals []int) string {
	if len(vals) <= 9 {
		digits := true
		for _, v := range vals {
			if v < 0 || v > 9 {
				digits = false
				break
			}
		}
		if digits {
			var b strings.Builder
			for _, v := range vals {
				b.WriteByte(byte('0' + v))
			}
			return b.String()
		}
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
