package horn

import (
	"fmt"

	"smtlab/internal/strategy"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Signature is the ordered list of integer parameters shared by every
// program point predicate.
type Signature []string

func (s Signature) Contains(name string) bool {
	return lo.Contains(s, name)
}

func (s Signature) consts(ctx *z3.Context) ([]*z3.Expr, env) {
	vars := make([]*z3.Expr, len(s))
	e := make(env, len(s))
	for i, name := range s {
		vars[i] = ctx.MkIntConst(name)
		e[name] = vars[i]
	}
	return vars, e
}

func (s Signature) sorts(ctx *z3.Context) []*z3.Sort {
	return lo.Map(s, func(_ string, _ int) *z3.Sort {
		return ctx.MkIntSort()
	})
}

// Point is one statement of the program together with its start and end
// predicates.
type Point struct {
	Index    int
	Stmt     Stmt
	Children []*Point
	Start    *z3.FuncDecl
	End      *z3.FuncDecl
}

func (p *Point) String() string {
	return fmt.Sprintf("%d: %s", p.Index, p.Stmt)
}

// numberPoints walks prog in pre-order, so the whole program is point 0 and
// every statement is numbered before the statements nested in it.
func numberPoints(prog Stmt) ([]*Point, error) {
	var (
		points []*Point
		dfs    = strategy.NewDFS[*Point]()
	)
	if err := dfs.Push(&Point{Stmt: prog}); err != nil {
		return nil, err
	}
	for dfs.HasNext() {
		p, err := dfs.Pop()
		if err != nil {
			return nil, err
		}
		if p.Stmt == nil {
			return nil, errors.Errorf("point %d has no statement", len(points))
		}
		p.Index = len(points)
		points = append(points, p)

		for _, child := range p.Stmt.children() {
			p.Children = append(p.Children, &Point{Stmt: child})
		}
		if err := dfs.Push(p.Children...); err != nil {
			return nil, err
		}
	}
	return points, nil
}

func declarePredicates(ctx *z3.Context, sig Signature, points []*Point) {
	domain := sig.sorts(ctx)
	for _, p := range points {
		p.Start = ctx.MkFuncDecl(ctx.MkStringSymbol(fmt.Sprintf("S%d", p.Index)), domain, ctx.MkBoolSort())
		p.End = ctx.MkFuncDecl(ctx.MkStringSymbol(fmt.Sprintf("E%d", p.Index)), domain, ctx.MkBoolSort())
	}
}
