package exercise

import (
	"context"
	"time"

	"smtlab/internal/cipher"
	"smtlab/internal/report"
	"smtlab/internal/util"

	"github.com/pkg/errors"
)

const XorKeyName = "xor-key"

type XorKeyConfig struct {
	// Problem defaults to the example ciphertext over lowercase letters.
	Problem *cipher.Problem
	// Backend defaults to yices.
	Backend string
	// Timeout bounds each solver call of the z3 backend.
	Timeout time.Duration
	Limit   int
	// First stops after the first model instead of enumerating.
	First bool
}

type XorKey struct {
	BaseExercise
	cfg XorKeyConfig
}

func NewXorKey(cfg XorKeyConfig) *XorKey {
	if cfg.Problem == nil {
		cfg.Problem = cipher.NewProblem(cipher.ExampleCiphertext)
	}
	if cfg.Backend == "" {
		cfg.Backend = cipher.BackendYices
	}
	return &XorKey{
		BaseExercise: BaseExercise{
			name:        XorKeyName,
			description: "recover a single-byte xor key from a lowercase ciphertext",
		},
		cfg: cfg,
	}
}

func (x *XorKey) Run(ctx context.Context) (*report.Report, error) {
	backend, err := cipher.NewBackend(x.cfg.Backend, cipher.WithTimeout(x.cfg.Timeout))
	if err != nil {
		return nil, err
	}
	var (
		recoverer = cipher.NewRecoverer(backend, x.cfg.Limit)
		res       *cipher.Result
	)
	if x.cfg.First {
		res, err = recoverer.RecoverFirst(ctx, x.cfg.Problem)
	} else {
		res, err = recoverer.Recover(ctx, x.cfg.Problem)
	}
	if err != nil {
		return nil, errors.Wrap(err, "recover")
	}

	rep := report.New(x.Name())
	rep.Status = res.Status.String()
	rep.Verdict = xorVerdict(x.cfg.Problem, res)
	rep.AddDetail("Backend: %s", backend.Name())
	rep.AddDetail("Ciphertext: %d bytes, %s", len(x.cfg.Problem.Ciphertext), util.Fingerprint(x.cfg.Problem.Ciphertext))
	if rep.Verdict == "any key" {
		rep.AddDetail("every key outside %v decodes the empty ciphertext", x.cfg.Problem.Exclude)
	}
	for _, c := range res.Candidates {
		rep.AddDetail("key: %d", c.Key)
		rep.AddDetail("message: %s", c.Message())
	}
	return rep, nil
}

func xorVerdict(p *cipher.Problem, res *cipher.Result) string {
	switch {
	case res.Status == cipher.Unsat:
		return "no key"
	case res.Status == cipher.Unknown:
		return "undecided"
	case len(p.Ciphertext) == 0:
		// nothing constrains the key
		return "any key"
	case res.Ambiguous():
		return "ambiguous"
	case res.Exhaustive:
		return "unique"
	default:
		// one model, but nothing rules out others
		return "recovered"
	}
}
