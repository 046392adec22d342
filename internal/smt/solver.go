package smt

import (
	"github.com/pkg/errors"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

type Solver struct {
	ctx    yices2.ContextT
	closed bool
}

func NewSolver() *Solver {
	s := &Solver{
		ctx: yices2.ContextT{},
	}
	yices2.InitContext(yices2.ConfigT{}, &s.ctx)
	return s
}

// Assert adds formulas to the context. They stay until the matching Pop.
func (s *Solver) Assert(formulas ...*Bool) error {
	if len(formulas) == 0 {
		return nil
	}
	errorcode := yices2.AssertFormulas(s.ctx, rawTerms(formulas))
	if errorcode < 0 {
		return errors.Errorf("assert formulas: %s", yices2.ErrorString())
	}
	return nil
}

// Check asserts the given formulas and checks the context. The model is only
// returned when the status is StatusSat.
func (s *Solver) Check(formulas ...*Bool) (yices2.SmtStatusT, *Model, error) {
	if err := s.Assert(formulas...); err != nil {
		return yices2.StatusError, nil, err
	}
	status := yices2.CheckContext(s.ctx, yices2.ParamT{})
	switch status {
	case yices2.StatusSat:
		model := yices2.GetModel(s.ctx, 1)
		if model == nil {
			return yices2.StatusError, nil, errors.Errorf("get model: %s", yices2.ErrorString())
		}
		return status, &Model{raw: model}, nil
	case yices2.StatusUnsat:
		fallthrough
	case yices2.StatusIdle:
		fallthrough
	case yices2.StatusSearching:
		fallthrough
	case yices2.StatusInterrupted:
		return status, nil, nil
	case yices2.StatusError:
		return status, nil, errors.Errorf("check context: %s", yices2.ErrorString())
	}
	return yices2.StatusError, nil, nil
}

func (s *Solver) Push() {
	yices2.Push(s.ctx)
}

func (s *Solver) Pop() {
	yices2.Pop(s.ctx)
}

// Close frees the context. Calling it more than once is a no-op.
func (s *Solver) Close() {
	if s.closed {
		return
	}
	yices2.CloseContext(&s.ctx)
	s.closed = true
}
