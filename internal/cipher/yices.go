package cipher

import (
	"context"
	"fmt"

	"smtlab/internal/smt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// yicesBackend expects smt.Init to have been called by the process.
type yicesBackend struct{}

func (b *yicesBackend) Name() string {
	return BackendYices
}

func (b *yicesBackend) Solve(ctx context.Context, p *Problem, exclude []byte) (Status, *Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, nil, err
	}
	var (
		solver   = smt.NewSolver()
		key      = smt.NewBitVec("k", 8)
		vs       = make([]*smt.BitVec, len(p.Ciphertext))
		min      = smt.NewBitVecValByte(p.Alphabet.Min)
		max      = smt.NewBitVecValByte(p.Alphabet.Max)
		formulas = make([]*smt.Bool, 0, 2*len(p.Ciphertext)+len(exclude))
	)
	defer solver.Close()

	for i, c := range p.Ciphertext {
		vs[i] = smt.NewBitVec(fmt.Sprintf("v%d", i), 8)
		formulas = append(formulas, smt.NewBitVecValByte(c).Xor(key).Eq(vs[i]))
		if p.Constrained(i) {
			formulas = append(formulas, vs[i].Within(min, max))
		}
	}
	for _, e := range exclude {
		formulas = append(formulas, key.Ne(smt.NewBitVecValByte(e)))
	}
	log.Debugf("yices: checking %d formulas", len(formulas))

	status, model, err := solver.Check(formulas...)
	if err != nil {
		return Unknown, nil, err
	}
	switch status {
	case yices2.StatusSat:
	case yices2.StatusUnsat:
		return Unsat, nil, nil
	default:
		return Unknown, nil, nil
	}
	defer model.Close()

	cand := &Candidate{Plaintext: make([]byte, len(vs))}
	if cand.Key, err = model.ByteValue(key); err != nil {
		// the key only drops out of the model when nothing mentions it
		if len(formulas) > 0 {
			return Unknown, nil, errors.Wrap(err, "read key")
		}
		cand.Key, _ = firstAllowedKey(exclude)
	}
	for i := range vs {
		if cand.Plaintext[i], err = model.ByteValue(vs[i]); err != nil {
			return Unknown, nil, errors.Wrapf(err, "read v%d", i)
		}
	}
	return Sat, cand, nil
}
