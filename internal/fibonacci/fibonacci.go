// Package fibonacci computes terms of the Fibonacci sequence using the
// 1-indexed convention fib(1) = fib(2) = 1.
package fibonacci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aalvaropc/memoform/internal/domain"
)

// MaxN is the largest index whose term fits in a uint64.
// fib(93) = 12200160415121876738, fib(94) overflows.
const MaxN = 93

// Result bundles one computation so it can be cached as a single value.
type Result struct {
	N     int
	Value uint64
	Err   error
}

func (r Result) OK() bool { return r.Err == nil }

// Term returns the n-th Fibonacci number.
//
// The loop is O(n); n outside 1..MaxN is rejected rather than overflowing.
func Term(n int) (uint64, error) {
	if n < 1 {
		return 0, &domain.OpError{
			Op:   "fibonacci.term",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("n must be >= 1, got %d: %w", n, domain.ErrInvalidInput),
		}
	}
	if n > MaxN {
		return 0, &domain.OpError{
			Op:   "fibonacci.term",
			Kind: domain.KindOutOfRange,
			Err:  fmt.Errorf("n must be <= %d, got %d: %w", MaxN, n, domain.ErrOutOfRange),
		}
	}

	var prev, cur uint64 = 0, 1
	for i := 1; i < n; i++ {
		prev, cur = cur, prev+cur
	}
	return cur, nil
}

// Parse converts the raw text of a numeric field into a Fibonacci index.
func Parse(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &domain.OpError{
			Op:   "fibonacci.parse",
			Kind: domain.KindEmptyInput,
			Err:  domain.ErrEmptyInput,
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange && isDigits(strings.TrimPrefix(s, "+")) {
			return 0, &domain.OpError{
				Op:   "fibonacci.parse",
				Kind: domain.KindOutOfRange,
				Err:  fmt.Errorf("%q is too large: %w", s, domain.ErrOutOfRange),
			}
		}
		return 0, &domain.OpError{
			Op:   "fibonacci.parse",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%q is not a number: %w", s, domain.ErrInvalidInput),
		}
	}
	if n < 1 {
		return 0, &domain.OpError{
			Op:   "fibonacci.parse",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%q must be a positive integer: %w", s, domain.ErrInvalidInput),
		}
	}
	return n, nil
}

// EffectiveLimit clamps a configured limit to 1..MaxN; zero or negative means MaxN.
func EffectiveLimit(limit int) int {
	if limit <= 0 || limit > MaxN {
		return MaxN
	}
	return limit
}

// Compute returns the function wrapped by the form's memo. Indices above
// limit are rejected with KindOutOfRange even when Term could handle them.
func Compute(limit int) func(int) Result {
	limit = EffectiveLimit(limit)
	return func(n int) Result {
		if n > limit {
			return Result{N: n, Err: &domain.OpError{
				Op:   "fibonacci.term",
				Kind: domain.KindOutOfRange,
				Err:  fmt.Errorf("n must be <= %d, got %d: %w", limit, n, domain.ErrOutOfRange),
			}}
		}
		v, err := Term(n)
		return Result{N: n, Value: v, Err: err}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
