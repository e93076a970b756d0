// Package form holds the state of the two-field form and its derived
// Fibonacci value.
//
// Each setter replaces its field unconditionally. Changing the Fibonacci input
// synchronously recomputes the derived value through a single-entry memo keyed
// by the parsed index; invalid input never reaches the computation. Changing
// the name leaves the derived value and the memo untouched.
package form

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/fibonacci"
	"github.com/aalvaropc/memoform/internal/memo"
)

type Form struct {
	cfg   domain.Config
	limit int
	log   *slog.Logger

	fibInput  string
	nameInput string

	cache   *memo.Cache[int, fibonacci.Result]
	current fibonacci.Result
}

type Option func(*Form)

func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

func New(cfg domain.Config, opts ...Option) *Form {
	limit := fibonacci.EffectiveLimit(cfg.Limits.MaxN)
	f := &Form{
		cfg:   cfg,
		limit: limit,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		cache: memo.New(fibonacci.Compute(limit)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.recompute()
	return f
}

// OnFibonacciInputChange replaces the Fibonacci text and recomputes the derived value.
func (f *Form) OnFibonacciInputChange(v string) {
	f.fibInput = v
	f.recompute()
}

// OnNameInputChange replaces the name text.
func (f *Form) OnNameInputChange(v string) {
	f.nameInput = v
}

func (f *Form) FibonacciInput() string { return f.fibInput }
func (f *Form) NameInput() string      { return f.nameInput }

func (f *Form) NameDisplayValue() string { return f.nameInput }

// FibonacciResult returns the derived value as of the last Fibonacci input change.
func (f *Form) FibonacciResult() fibonacci.Result { return f.current }

// FibonacciDisplayValue renders the derived value, or a fallback text when
// the input is empty, invalid, or above the configured limit.
func (f *Form) FibonacciDisplayValue() string {
	r := f.current
	switch {
	case r.Err == nil:
		return strconv.FormatUint(r.Value, 10)
	case domain.IsKind(r.Err, domain.KindEmptyInput):
		return f.cfg.Display.Empty
	case domain.IsKind(r.Err, domain.KindOutOfRange):
		return fmt.Sprintf("too large (max %d)", f.limit)
	default:
		return f.cfg.Display.Invalid
	}
}

func (f *Form) CacheStats() memo.Stats { return f.cache.Stats() }

// Limit is the effective maximum Fibonacci index.
func (f *Form) Limit() int { return f.limit }

func (f *Form) Snapshot() domain.Snapshot {
	st := f.cache.Stats()
	s := domain.Snapshot{
		FibInput:     f.fibInput,
		FibDisplay:   f.FibonacciDisplayValue(),
		FibValid:     f.current.OK(),
		Name:         f.nameInput,
		Computations: st.Computations,
		CacheHits:    st.Hits,
	}
	if f.current.Err != nil {
		s.FibError = f.current.Err.Error()
	}
	return s
}

// Apply routes an input event to the matching setter.
func (f *Form) Apply(ev domain.InputEvent) error {
	switch ev.Field {
	case domain.FieldFib:
		f.OnFibonacciInputChange(ev.Value)
	case domain.FieldName:
		f.OnNameInputChange(ev.Value)
	default:
		return &domain.OpError{
			Op:   "form.apply",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("unknown field %q: %w", ev.Field, domain.ErrInvalidInput),
		}
	}
	return nil
}

func (f *Form) recompute() {
	n, err := fibonacci.Parse(f.fibInput)
	if err != nil {
		f.current = fibonacci.Result{Err: err}
		if !domain.IsKind(err, domain.KindEmptyInput) {
			f.log.Debug("fib.invalid", "input", f.fibInput, "err", err)
		}
		return
	}

	before := f.cache.Stats().Computations
	f.current = f.cache.Get(n)

	if f.cache.Stats().Computations == before {
		f.log.Debug("fib.cache_hit", "n", n)
		return
	}
	if f.current.Err != nil {
		f.log.Debug("fib.recompute", "n", n, "err", f.current.Err)
		return
	}
	f.log.Debug("fib.recompute", "n", n, "value", f.current.Value)
}
