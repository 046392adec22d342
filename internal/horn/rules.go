package horn

import (
	"fmt"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Family int

const (
	FamilyInit Family = iota
	FamilyAssign
	FamilyCompose
	FamilyWhile
	FamilyIf
	FamilySkip
	FamilyQuery
)

func (f Family) String() string {
	switch f {
	case FamilyInit:
		return "init"
	case FamilyAssign:
		return "assign"
	case FamilyCompose:
		return "compose"
	case FamilyWhile:
		return "while"
	case FamilyIf:
		return "if"
	case FamilySkip:
		return "skip"
	case FamilyQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Rule is one universally quantified implication. Point is the program
// point the rule belongs to, or -1 for the init and query rules.
type Rule struct {
	Name    string
	Family  Family
	Point   int
	Formula *z3.Expr
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s: %s", r.Name, r.Formula)
}

// ruleBuilder creates the rules of one encoding. All rules quantify over
// the same signature constants.
type ruleBuilder struct {
	ctx  *z3.Context
	sig  Signature
	vars []*z3.Expr
	env  env
}

func newRuleBuilder(ctx *z3.Context, sig Signature) *ruleBuilder {
	vars, e := sig.consts(ctx)
	return &ruleBuilder{ctx: ctx, sig: sig, vars: vars, env: e}
}

func (b *ruleBuilder) apply(pred *z3.FuncDecl) *z3.Expr {
	return b.ctx.MkApp(pred, b.vars...)
}

// implies builds forall bound: body => head. A nil body is true.
func (b *ruleBuilder) implies(bound []*z3.Expr, body []*z3.Expr, head *z3.Expr) *z3.Expr {
	var lhs *z3.Expr
	switch len(body) {
	case 0:
		lhs = b.ctx.MkTrue()
	case 1:
		lhs = body[0]
	default:
		lhs = b.ctx.MkAnd(body...)
	}
	return b.ctx.MkForall(bound, b.ctx.MkImplies(lhs, head))
}

func (b *ruleBuilder) rule(name string, family Family, point int, formula *z3.Expr) *Rule {
	r := &Rule{Name: name, Family: family, Point: point, Formula: formula}
	log.Debugf("rule %s", r)
	return r
}

// link is forall sig: from(sig) && cond => to(sig).
func (b *ruleBuilder) link(from, to *z3.FuncDecl, cond *z3.Expr) *z3.Expr {
	body := []*z3.Expr{b.apply(from)}
	if cond != nil {
		body = append(body, cond)
	}
	return b.implies(b.vars, body, b.apply(to))
}

// pointRules returns the rules contributed by the statement at p.
func (b *ruleBuilder) pointRules(p *Point) ([]*Rule, error) {
	switch st := p.Stmt.(type) {
	case Skip:
		return []*Rule{
			b.rule(fmt.Sprintf("e%d", p.Index), FamilySkip, p.Index, b.link(p.Start, p.End, nil)),
		}, nil
	case Assign:
		f, err := b.assign(p, st)
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", p.Index)
		}
		return []*Rule{b.rule(fmt.Sprintf("a%d", p.Index), FamilyAssign, p.Index, f)}, nil
	case Seq:
		return b.compose(p), nil
	case While:
		cond, err := st.Cond.formula(b.ctx, b.env)
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", p.Index)
		}
		body := p.Children[0]
		fs := []*z3.Expr{
			b.link(p.Start, body.Start, cond),
			b.link(body.End, p.Start, nil),
			b.link(p.Start, p.End, b.ctx.MkNot(cond)),
		}
		return b.indexed("w", FamilyWhile, p.Index, fs), nil
	case If:
		cond, err := st.Cond.formula(b.ctx, b.env)
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", p.Index)
		}
		then, els := p.Children[0], p.Children[1]
		fs := []*z3.Expr{
			b.link(p.Start, then.Start, cond),
			b.link(then.End, p.End, nil),
			b.link(p.Start, els.Start, b.ctx.MkNot(cond)),
			b.link(els.End, p.End, nil),
		}
		return b.indexed("i", FamilyIf, p.Index, fs), nil
	}
	return nil, errors.Errorf("point %d: unsupported statement %T", p.Index, p.Stmt)
}

// assign is forall sig, v1: S_p(sig) && v1 == e(sig) => E_p(sig[v := v1]).
func (b *ruleBuilder) assign(p *Point, st Assign) (*z3.Expr, error) {
	if !b.sig.Contains(st.Var) {
		return nil, errors.Errorf("assignment to unknown variable %q", st.Var)
	}
	rhs, err := st.Expr.term(b.ctx, b.env)
	if err != nil {
		return nil, err
	}
	name := st.Var + "1"
	for b.sig.Contains(name) {
		name += "'"
	}
	fresh := b.ctx.MkIntConst(name)

	args := make([]*z3.Expr, len(b.vars))
	for i, v := range b.sig {
		if v == st.Var {
			args[i] = fresh
		} else {
			args[i] = b.vars[i]
		}
	}
	bound := append(append([]*z3.Expr{}, b.vars...), fresh)
	return b.implies(bound,
		[]*z3.Expr{b.apply(p.Start), b.ctx.MkEq(fresh, rhs)},
		b.ctx.MkApp(p.End, args...),
	), nil
}

// compose chains the children of a sequence: S_b => S_first,
// E_i => S_i+1 and E_last => E_b.
func (b *ruleBuilder) compose(p *Point) []*Rule {
	if len(p.Children) == 0 {
		return b.indexed("c", FamilyCompose, p.Index, []*z3.Expr{b.link(p.Start, p.End, nil)})
	}
	fs := []*z3.Expr{b.link(p.Start, p.Children[0].Start, nil)}
	for i := 1; i < len(p.Children); i++ {
		fs = append(fs, b.link(p.Children[i-1].End, p.Children[i].Start, nil))
	}
	fs = append(fs, b.link(p.Children[len(p.Children)-1].End, p.End, nil))
	return b.indexed("c", FamilyCompose, p.Index, fs)
}

func (b *ruleBuilder) indexed(prefix string, family Family, point int, fs []*z3.Expr) []*Rule {
	rules := make([]*Rule, len(fs))
	for i, f := range fs {
		rules[i] = b.rule(fmt.Sprintf("%s%d[%d]", prefix, point, i), family, point, f)
	}
	return rules
}
