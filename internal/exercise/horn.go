package exercise

import (
	"context"
	"strings"

	"smtlab/internal/horn"
	"smtlab/internal/report"
	"smtlab/internal/z3session"
)

type HornConfig struct {
	Order   horn.Order
	Session z3session.Config
	// Dump adds the asserted SMT-LIB2 script to the report.
	Dump bool
}

type Horn struct {
	BaseExercise
	variant horn.Variant
	cfg     HornConfig
}

func NewHorn(variant horn.Variant, cfg HornConfig) *Horn {
	return &Horn{
		BaseExercise: BaseExercise{
			name:        "horn-" + string(variant),
			description: "verify z = y; while 0 < x { z = z+1; x = x-1 } with the " + string(variant) + " encoding",
		},
		variant: variant,
		cfg:     cfg,
	}
}

func NewHornExercises(cfg HornConfig) []Exercise {
	var result []Exercise
	for _, v := range horn.Variants() {
		result = append(result, NewHorn(v, cfg))
	}
	return result
}

func (h *Horn) Run(ctx context.Context) (*report.Report, error) {
	out, err := horn.Run(ctx, horn.Options{
		Variant: h.variant,
		Order:   h.cfg.Order,
		Session: h.cfg.Session,
	})
	if err != nil {
		return nil, err
	}

	rep := report.New(h.Name())
	rep.Status = out.Status.String()
	rep.Verdict = out.Verdict.String()
	rep.Elapsed = out.Elapsed
	rep.AddDetail("Postcondition: %s", h.variant.Postcondition())
	rep.AddDetail("Rules: %d", out.Rules)
	switch out.Verdict {
	case horn.Proven:
		rep.AddDetail("Model:\n%s", strings.TrimSpace(out.Model))
	case horn.Undecided:
		rep.AddDetail("Reason: %s", out.Reason)
	}
	if h.cfg.Dump {
		rep.AddDetail("Script:\n%s", strings.TrimSpace(out.Script))
	}
	return rep, nil
}
