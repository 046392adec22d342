// Package horn encodes the operational semantics of small while programs as
// constrained Horn clauses and asks Z3's fixpoint engine whether a
// postcondition holds.
//
// Every program point p gets two predicates over the program variables:
// S_p holds in the states in which p may start, E_p in the states in which it
// may end. Each statement contributes implications between these predicates,
// the precondition makes S_0 reachable and the query derives False from any
// end state of the whole program that violates the postcondition.
package horn

import (
	"fmt"
	"strings"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Stmt interface {
	fmt.Stringer
	children() []Stmt
}

type Skip struct{}

func (Skip) String() string { return "skip" }
func (Skip) children() []Stmt { return nil }

type Assign struct {
	Var  string
	Expr Expr
}

func (a Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Var, a.Expr)
}

func (Assign) children() []Stmt { return nil }

type Seq struct {
	Stmts []Stmt
}

func (s Seq) String() string {
	return strings.Join(lo.Map(s.Stmts, func(st Stmt, _ int) string {
		return st.String()
	}), "; ")
}

func (s Seq) children() []Stmt { return s.Stmts }

type If struct {
	Cond Cond
	Then Stmt
	Else Stmt
}

func (i If) String() string {
	return fmt.Sprintf("if %s { %s } else { %s }", i.Cond, i.Then, i.Else)
}

func (i If) children() []Stmt { return []Stmt{i.Then, i.Else} }

type While struct {
	Cond Cond
	Body Stmt
}

func (w While) String() string {
	return fmt.Sprintf("while %s { %s }", w.Cond, w.Body)
}

func (w While) children() []Stmt { return []Stmt{w.Body} }

// ExampleProgram is z = y; while 0 < x { z = z+1; x = x-1 }.
func ExampleProgram() Stmt {
	return Seq{Stmts: []Stmt{
		Assign{Var: "z", Expr: Var("y")},
		While{
			Cond: Lt{Const(0), Var("x")},
			Body: Seq{Stmts: []Stmt{
				Assign{Var: "z", Expr: Add{Var("z"), Const(1)}},
				Assign{Var: "x", Expr: Sub{Var("x"), Const(1)}},
			}},
		},
	}}
}

// env binds variable names to the integer constants quantified in a rule.
type env map[string]*z3.Expr

func (e env) lookup(name string) (*z3.Expr, error) {
	v, ok := e[name]
	if !ok {
		return nil, errors.Errorf("unknown variable %q", name)
	}
	return v, nil
}

// Expr is an integer expression.
type Expr interface {
	fmt.Stringer
	term(ctx *z3.Context, e env) (*z3.Expr, error)
}

type Var string

func (v Var) String() string { return string(v) }

func (v Var) term(_ *z3.Context, e env) (*z3.Expr, error) {
	return e.lookup(string(v))
}

type Const int

func (c Const) String() string { return fmt.Sprint(int(c)) }

func (c Const) term(ctx *z3.Context, _ env) (*z3.Expr, error) {
	return ctx.MkInt(int(c), ctx.MkIntSort()), nil
}

type Add struct{ L, R Expr }

func (a Add) String() string { return fmt.Sprintf("%s + %s", a.L, a.R) }

func (a Add) term(ctx *z3.Context, e env) (*z3.Expr, error) {
	return binary(ctx, e, a.L, a.R, func(l, r *z3.Expr) *z3.Expr { return ctx.MkAdd(l, r) })
}

type Sub struct{ L, R Expr }

func (s Sub) String() string { return fmt.Sprintf("%s - %s", s.L, s.R) }

func (s Sub) term(ctx *z3.Context, e env) (*z3.Expr, error) {
	return binary(ctx, e, s.L, s.R, func(l, r *z3.Expr) *z3.Expr { return ctx.MkSub(l, r) })
}

// Cond is a boolean condition over integer expressions.
type Cond interface {
	fmt.Stringer
	formula(ctx *z3.Context, e env) (*z3.Expr, error)
}

type Lt struct{ L, R Expr }

func (c Lt) String() string { return fmt.Sprintf("%s < %s", c.L, c.R) }

func (c Lt) formula(ctx *z3.Context, e env) (*z3.Expr, error) {
	return binary(ctx, e, c.L, c.R, func(l, r *z3.Expr) *z3.Expr { return ctx.MkLt(l, r) })
}

type Gt struct{ L, R Expr }

func (c Gt) String() string { return fmt.Sprintf("%s > %s", c.L, c.R) }

func (c Gt) formula(ctx *z3.Context, e env) (*z3.Expr, error) {
	return binary(ctx, e, c.L, c.R, func(l, r *z3.Expr) *z3.Expr { return ctx.MkGt(l, r) })
}

type Eq struct{ L, R Expr }

func (c Eq) String() string { return fmt.Sprintf("%s == %s", c.L, c.R) }

func (c Eq) formula(ctx *z3.Context, e env) (*z3.Expr, error) {
	return binary(ctx, e, c.L, c.R, func(l, r *z3.Expr) *z3.Expr { return ctx.MkEq(l, r) })
}

type Not struct{ C Cond }

func (c Not) String() string { return fmt.Sprintf("!(%s)", c.C) }

func (c Not) formula(ctx *z3.Context, e env) (*z3.Expr, error) {
	f, err := c.C.formula(ctx, e)
	if err != nil {
		return nil, err
	}
	return ctx.MkNot(f), nil
}

type And []Cond

func (c And) String() string {
	return strings.Join(lo.Map(c, func(cc Cond, _ int) string {
		return cc.String()
	}), " && ")
}

func (c And) formula(ctx *z3.Context, e env) (*z3.Expr, error) {
	if len(c) == 0 {
		return ctx.MkTrue(), nil
	}
	fs := make([]*z3.Expr, len(c))
	for i, cc := range c {
		f, err := cc.formula(ctx, e)
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return ctx.MkAnd(fs...), nil
}

func binary(ctx *z3.Context, e env, l, r Expr, mk func(l, r *z3.Expr) *z3.Expr) (*z3.Expr, error) {
	lt, err := l.term(ctx, e)
	if err != nil {
		return nil, err
	}
	rt, err := r.term(ctx, e)
	if err != nil {
		return nil, err
	}
	return mk(lt, rt), nil
}
