package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/form"
	"github.com/aalvaropc/memoform/internal/ports"
)

// ReplayScript feeds a recorded sequence of input events into a fresh form
// and captures the form state after each one.
type ReplayScript struct {
	scripts ports.ScriptLoader
	cfg     domain.Config
	log     *slog.Logger
}

func NewReplayScript(sl ports.ScriptLoader, cfg domain.Config, log *slog.Logger) *ReplayScript {
	if log == nil {
		log = slog.Default()
	}
	return &ReplayScript{scripts: sl, cfg: cfg, log: log}
}

// Execute returns one snapshot per event. On cancellation the snapshots
// gathered so far are returned together with ctx.Err().
func (uc *ReplayScript) Execute(ctx context.Context, scriptPath string) (domain.Script, []domain.Snapshot, error) {
	script, err := uc.scripts.LoadScript(scriptPath)
	if err != nil {
		return domain.Script{}, nil, err
	}

	uc.log.Info("replay.start", "script", script.Name, "path", scriptPath, "events", len(script.Events))

	f := form.New(uc.cfg, form.WithLogger(uc.log))
	out := make([]domain.Snapshot, 0, len(script.Events))

	for i, ev := range script.Events {
		if err := ctx.Err(); err != nil {
			uc.log.Warn("replay.canceled", "script", script.Name, "step", i+1)
			return script, out, err
		}

		if err := f.Apply(ev); err != nil {
			return script, out, fmt.Errorf("event %d: %w", i+1, err)
		}

		snap := f.Snapshot()
		snap.Step = i + 1
		snap.Field = ev.Field
		out = append(out, snap)
	}

	st := f.CacheStats()
	uc.log.Info("replay.done",
		"script", script.Name,
		"events", len(script.Events),
		"computations", st.Computations,
		"cache_hits", st.Hits,
	)

	return script, out, nil
}
