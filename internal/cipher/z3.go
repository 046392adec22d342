package cipher

import (
	"context"
	"fmt"
	"time"

	"smtlab/internal/z3session"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type z3Backend struct {
	timeout time.Duration
}

func (b *z3Backend) Name() string {
	return BackendZ3
}

func (b *z3Backend) Solve(ctx context.Context, p *Problem, exclude []byte) (Status, *Candidate, error) {
	sess := z3session.New(z3session.Config{Logic: z3session.LogicBV, Timeout: b.timeout})
	defer sess.Close()

	var (
		zctx  = sess.Context()
		key   = zctx.MkBVConst("k", 8)
		vs    = make([]*z3.Expr, len(p.Ciphertext))
		min   = zctx.MkBV(int(p.Alphabet.Min), 8)
		max   = zctx.MkBV(int(p.Alphabet.Max), 8)
		count int
	)
	for i, c := range p.Ciphertext {
		vs[i] = zctx.MkBVConst(fmt.Sprintf("v%d", i), 8)
		sess.Assert(zctx.MkEq(zctx.MkBVXor(zctx.MkBV(int(c), 8), key), vs[i]))
		count++
		if p.Constrained(i) {
			sess.Assert(zctx.MkBVUGE(vs[i], min), zctx.MkBVULE(vs[i], max))
			count += 2
		}
	}
	for _, e := range exclude {
		sess.Assert(zctx.MkNot(zctx.MkEq(key, zctx.MkBV(int(e), 8))))
		count++
	}
	log.Debugf("z3: checking %d formulas", count)

	switch sess.Check(ctx) {
	case z3.Satisfiable:
	case z3.Unsatisfiable:
		return Unsat, nil, nil
	default:
		log.Infof("z3 gave up: %s", sess.ReasonUnknown())
		return Unknown, nil, nil
	}

	model := sess.Model()
	if model == nil {
		return Unknown, nil, errors.New("z3 reported sat without a model")
	}
	read := func(e *z3.Expr) (byte, error) {
		// completion assigns a value even when nothing constrains e
		val, ok := model.Eval(e, true)
		if !ok {
			return 0, errors.Errorf("eval %s", e)
		}
		n, err := z3session.ParseNumeral(val.String())
		if err != nil {
			return 0, errors.Wrapf(err, "parse value of %s", e)
		}
		return byte(n), nil
	}

	var (
		cand = &Candidate{Plaintext: make([]byte, len(vs))}
		err  error
	)
	if cand.Key, err = read(key); err != nil {
		return Unknown, nil, err
	}
	for i := range vs {
		if cand.Plaintext[i], err = read(vs[i]); err != nil {
			return Unknown, nil, err
		}
	}
	return Sat, cand, nil
}
