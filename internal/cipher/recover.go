package cipher

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const keySpace = 256

// DefaultLimit bounds enumeration at the size of the key space.
const DefaultLimit = keySpace

type Recoverer struct {
	backend Backend
	limit   int
}

func NewRecoverer(backend Backend, limit int) *Recoverer {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return &Recoverer{backend: backend, limit: limit}
}

func (r *Recoverer) Backend() Backend {
	return r.backend
}

// RecoverFirst asks the backend once and reports whatever key it finds first.
func (r *Recoverer) RecoverFirst(ctx context.Context, p *Problem) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	status, cand, err := r.backend.Solve(ctx, p, p.Exclude)
	if err != nil {
		return nil, errors.Wrapf(err, "%s backend", r.backend.Name())
	}
	res := &Result{Status: status}
	if status == Sat {
		if err := p.Verify(cand); err != nil {
			return nil, errors.Wrapf(err, "%s backend returned a bad model", r.backend.Name())
		}
		res.Candidates = append(res.Candidates, cand)
	}
	return res, nil
}

// Recover enumerates every key that satisfies the problem. After each
// satisfying model the key is excluded and the backend is asked again, until
// it answers unsat, gives up, or the limit is reached.
func (r *Recoverer) Recover(ctx context.Context, p *Problem) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var (
		res     = &Result{Status: Unknown}
		exclude = append([]byte(nil), p.Exclude...)
	)
	for len(res.Candidates) < r.limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		status, cand, err := r.backend.Solve(ctx, p, exclude)
		if err != nil {
			return nil, errors.Wrapf(err, "%s backend", r.backend.Name())
		}
		log.Debugf("%s: round %d is %s", r.backend.Name(), len(res.Candidates), status)

		switch status {
		case Sat:
			if err := p.Verify(cand); err != nil {
				return nil, errors.Wrapf(err, "%s backend returned a bad model", r.backend.Name())
			}
			res.Status = Sat
			res.Candidates = append(res.Candidates, cand)
			exclude = append(exclude, cand.Key)
			log.Infof("found %s", cand)
			if len(p.Ciphertext) == 0 {
				// every allowed key decodes the empty message
				return res, nil
			}
		case Unsat:
			res.Exhaustive = true
			if len(res.Candidates) == 0 {
				res.Status = Unsat
			}
			return res, nil
		default:
			log.Warnf("%s backend gave up after %d candidates", r.backend.Name(), len(res.Candidates))
			return res, nil
		}
	}
	if len(lo.Uniq(exclude)) == keySpace {
		// every byte is a candidate or excluded, nothing is left to ask for
		res.Exhaustive = true
	}
	return res, nil
}
