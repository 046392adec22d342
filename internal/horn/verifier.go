package horn

import (
	"context"
	"time"

	"smtlab/internal/z3session"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Verdict int

const (
	Undecided Verdict = iota
	// Proven means False is not derivable: every end state reachable from
	// the precondition satisfies the postcondition.
	Proven
	// Refuted means False is derivable, so some run violates the
	// postcondition.
	Refuted
)

func (v Verdict) String() string {
	switch v {
	case Proven:
		return "proven"
	case Refuted:
		return "refuted"
	default:
		return "undecided"
	}
}

// verdictOf maps the status of a rule set whose query derives False.
func verdictOf(status z3.Status) Verdict {
	switch status {
	case z3.Satisfiable:
		return Proven
	case z3.Unsatisfiable:
		return Refuted
	default:
		return Undecided
	}
}

type Outcome struct {
	Status  z3.Status
	Verdict Verdict
	// Model holds the inductive invariants, only for Proven.
	Model string
	// Reason is the solver's explanation, only for Undecided.
	Reason string
	Rules  int
	// Script is the asserted rule set in SMT-LIB2.
	Script  string
	Elapsed time.Duration
}

type Verifier struct {
	order Order
}

func NewVerifier(order Order) *Verifier {
	return &Verifier{order: order}
}

// Verify asserts the rules of enc into its session, in the verifier's order,
// and checks them once. An encoding can only be verified once.
func (v *Verifier) Verify(ctx context.Context, enc *Encoding) (*Outcome, error) {
	sess := enc.Session()
	if sess == nil {
		return nil, errors.New("encoding has no session")
	}
	if logic := sess.Config().Logic; logic != z3session.LogicHorn {
		return nil, errors.Errorf("session logic is %q, want %q", logic, z3session.LogicHorn)
	}
	if enc.checked {
		return nil, errors.New("encoding was already verified")
	}
	rules, err := enc.Order(v.order)
	if err != nil {
		return nil, err
	}
	enc.checked = true

	for _, r := range rules {
		sess.Assert(r.Formula)
	}
	log.Debugf("checking %d rules in %s order", len(rules), v.order)

	start := time.Now()
	status := sess.Check(ctx)
	out := &Outcome{
		Status:  status,
		Verdict: verdictOf(status),
		Rules:   len(rules),
		Script:  sess.String(),
		Elapsed: time.Since(start),
	}
	switch out.Verdict {
	case Proven:
		if m := sess.Model(); m != nil {
			out.Model = m.String()
		}
	case Undecided:
		out.Reason = sess.ReasonUnknown()
		if err := ctx.Err(); err != nil {
			return out, errors.Wrap(err, "verification interrupted")
		}
	}
	log.Infof("%s: %s (%s) in %s", enc.Variant, out.Verdict, status, out.Elapsed)
	return out, nil
}

// Options configure one end-to-end verification of a program.
type Options struct {
	Variant Variant
	Order   Order
	Session z3session.Config
	// Postcondition overrides the variant's postcondition when set.
	Postcondition Cond
	// Program defaults to ExampleProgram.
	Program Stmt
}

// Run opens a HORN session, encodes the program and verifies it.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	cfg := opts.Session
	cfg.Logic = z3session.LogicHorn
	sess := z3session.New(cfg)
	defer sess.Close()

	enc, err := NewEncoder(sess, opts.Variant)
	if err != nil {
		return nil, err
	}
	if opts.Postcondition != nil {
		enc.SetPostcondition(opts.Postcondition)
	}
	prog := opts.Program
	if prog == nil {
		prog = ExampleProgram()
	}
	encoding, err := enc.Encode(prog)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", opts.Variant)
	}
	return NewVerifier(opts.Order).Verify(ctx, encoding)
}
