package usecase

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/form"
)

// Evaluate fills a fresh form once and reports the resulting state.
type Evaluate struct {
	cfg domain.Config
	log *slog.Logger
}

func NewEvaluate(cfg domain.Config, log *slog.Logger) *Evaluate {
	return &Evaluate{cfg: cfg, log: log}
}

func (uc *Evaluate) Execute(ctx context.Context, fib, name string) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	f := form.New(uc.cfg, form.WithLogger(uc.log))
	f.OnFibonacciInputChange(fib)
	f.OnNameInputChange(name)

	return f.Snapshot(), nil
}
