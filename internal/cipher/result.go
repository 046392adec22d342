package cipher

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Status int

const (
	Unknown Status = iota
	Sat
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Candidate is one key together with the plaintext it decodes to.
type Candidate struct {
	Key       byte
	Plaintext []byte
}

func (c *Candidate) Message() string {
	return string(c.Plaintext)
}

func (c *Candidate) String() string {
	return fmt.Sprintf("key %d (%q): %s", c.Key, c.Key, c.Message())
}

type Result struct {
	Status     Status
	Candidates []*Candidate
	// Exhaustive is set when enumeration stopped because no further key
	// satisfies the constraints.
	Exhaustive bool
}

// Ambiguous reports whether more than one key fits the ciphertext.
func (r *Result) Ambiguous() bool {
	return len(r.Candidates) > 1
}

func (r *Result) Keys() []byte {
	return lo.Map(r.Candidates, func(c *Candidate, _ int) byte {
		return c.Key
	})
}

// Key returns the key of the first candidate. It fails unless the result is
// satisfiable.
func (r *Result) Key() (byte, error) {
	if r.Status != Sat || len(r.Candidates) == 0 {
		return 0, errors.Errorf("no key: result is %s", r.Status)
	}
	return r.Candidates[0].Key, nil
}

func (r *Result) Plaintext() ([]byte, error) {
	if r.Status != Sat || len(r.Candidates) == 0 {
		return nil, errors.Errorf("no plaintext: result is %s", r.Status)
	}
	return r.Candidates[0].Plaintext, nil
}
