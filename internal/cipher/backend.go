package cipher

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	BackendYices = "yices"
	BackendZ3    = "z3"
	BackendGini  = "gini"
)

// Backend runs one decision procedure call for a problem. Every call starts
// from a fresh solver: it declares the key and plaintext variables, asserts
// the xor, alphabet and exclusion constraints and checks once. The candidate
// is only read out of the model when the status is Sat.
type Backend interface {
	Name() string
	Solve(ctx context.Context, p *Problem, exclude []byte) (Status, *Candidate, error)
}

func Backends() []string {
	return []string{BackendYices, BackendZ3, BackendGini}
}

type backendOptions struct {
	timeout time.Duration
}

type Option func(*backendOptions)

// WithTimeout bounds every solver call. Only the z3 backend honours it.
func WithTimeout(d time.Duration) Option {
	return func(o *backendOptions) {
		o.timeout = d
	}
}

func NewBackend(name string, opts ...Option) (Backend, error) {
	var o backendOptions
	for _, opt := range opts {
		opt(&o)
	}
	switch name {
	case BackendYices:
		return &yicesBackend{}, nil
	case BackendZ3:
		return &z3Backend{timeout: o.timeout}, nil
	case BackendGini:
		return &giniBackend{}, nil
	}
	return nil, errors.Errorf("unknown backend %q, want one of %v", name, Backends())
}
