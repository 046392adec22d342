// Package z3session owns a Z3 context and the solver created for it. All
// solver configuration is passed in explicitly through Config.
package z3session

import (
	"context"
	"strconv"
	"sync"
	"time"

	z3 "github.com/Z3Prover/z3/src/api/go"
	log "github.com/sirupsen/logrus"
)

const (
	LogicHorn = "HORN"
	LogicBV   = "QF_BV"
)

type Config struct {
	// Proof turns on proof production for the context.
	Proof bool
	// Timeout bounds a single Check. Zero means no limit.
	Timeout time.Duration
	// Logic selects the solver. Empty means Z3's default solver.
	Logic string
}

type Session struct {
	cfg    Config
	ctx    *z3.Context
	solver *z3.Solver
	// reason is set when Check returned Unknown without running the solver.
	reason string
}

func New(cfg Config) *Session {
	zcfg := z3.NewConfig()
	zcfg.SetParamValue("model", "true")
	if cfg.Proof {
		zcfg.SetParamValue("proof", "true")
	}
	ctx := z3.NewContextWithConfig(zcfg)

	var solver *z3.Solver
	if cfg.Logic != "" {
		solver = ctx.NewSolverForLogic(cfg.Logic)
	} else {
		solver = ctx.NewSolver()
	}
	if cfg.Timeout > 0 {
		params := ctx.MkParams()
		params.SetUint("timeout", uint(cfg.Timeout/time.Millisecond))
		solver.SetParams(params)
	}
	return &Session{
		cfg:    cfg,
		ctx:    ctx,
		solver: solver,
	}
}

func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) Context() *z3.Context {
	return s.ctx
}

func (s *Session) Solver() *z3.Solver {
	return s.solver
}

// Assert adds formulas to the solver.
func (s *Session) Assert(formulas ...*z3.Expr) {
	for _, f := range formulas {
		s.solver.Assert(f)
	}
}

// Check runs the solver. If ctx is cancelled while the solver is running,
// the solver is interrupted and reports Unknown. A context that is already
// done reports Unknown without running the solver.
func (s *Session) Check(ctx context.Context) z3.Status {
	if err := ctx.Err(); err != nil {
		s.reason = err.Error()
		return z3.Unknown
	}
	s.reason = ""

	var (
		solver = s.solver
		stop   = make(chan struct{})
		wg     sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			log.Debugf("interrupting z3: %v", ctx.Err())
			solver.Interrupt()
		case <-stop:
		}
	}()
	status := solver.Check()
	close(stop)
	wg.Wait()
	return status
}

// Model is only meaningful after Check returned Satisfiable.
func (s *Session) Model() *z3.Model {
	return s.solver.Model()
}

func (s *Session) ReasonUnknown() string {
	if s.reason != "" {
		return s.reason
	}
	return s.solver.ReasonUnknown()
}

// String renders the asserted formulas as an SMT-LIB2 script.
func (s *Session) String() string {
	return s.solver.String()
}

// Int is an integer numeral.
func (s *Session) Int(v int) *z3.Expr {
	return s.ctx.MkInt(v, s.ctx.MkIntSort())
}

// Close drops the references held by the session. The Z3 objects themselves
// are released by the binding's finalizers.
func (s *Session) Close() {
	s.solver = nil
	s.ctx = nil
}

// ParseNumeral reads a numeral printed by Z3: decimal, #x hex or #b binary.
func ParseNumeral(s string) (uint64, error) {
	switch {
	case len(s) > 2 && s[:2] == "#x":
		return strconv.ParseUint(s[2:], 16, 64)
	case len(s) > 2 && s[:2] == "#b":
		return strconv.ParseUint(s[2:], 2, 64)
	default:
		return strconv.ParseUint(s, 10, 64)
	}
}
