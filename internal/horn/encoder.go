package horn

import (
	"smtlab/internal/z3session"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Variant string

const (
	// Plain checks x == 0 on exit for every start with x > 0 and y > 0.
	Plain Variant = "plain"
	// Tracked carries the initial values x0, y0 through every predicate and
	// checks z == x0 + y0 on exit.
	Tracked Variant = "tracked"
	// InitPredicate records the initial values in a separate Init(x, y)
	// predicate and checks z == x0 + y0 against it.
	InitPredicate Variant = "init"
)

func Variants() []Variant {
	return []Variant{Plain, Tracked, InitPredicate}
}

func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !lo.Contains(Variants(), v) {
		return "", errors.Errorf("unknown variant %q, want one of %v", s, Variants())
	}
	return v, nil
}

type variantDef struct {
	sig  Signature
	pre  Cond
	post Cond
	// ghosts are the parameters of the Init predicate. The query binds a
	// copy of each one, named with a 0 suffix.
	ghosts []string
	// entry links Init to the start of the program.
	entry Cond
}

var (
	positiveXY = And{Gt{Var("x"), Const(0)}, Gt{Var("y"), Const(0)}}
	sumOfStart = Eq{Var("z"), Add{Var("x0"), Var("y0")}}

	variantDefs = map[Variant]variantDef{
		Plain: {
			sig:  Signature{"x", "y", "z"},
			pre:  positiveXY,
			post: Eq{Var("x"), Const(0)},
		},
		Tracked: {
			sig: Signature{"x0", "y0", "x", "y", "z"},
			pre: And{
				Gt{Var("x0"), Const(0)},
				Gt{Var("y0"), Const(0)},
				Eq{Var("x"), Var("x0")},
				Eq{Var("y"), Var("y0")},
			},
			post: sumOfStart,
		},
		InitPredicate: {
			sig:    Signature{"x", "y", "z"},
			pre:    positiveXY,
			post:   sumOfStart,
			ghosts: []string{"x", "y"},
			entry:  Eq{Var("z"), Var("y")},
		},
	}
)

// Signature returns the parameters of the program point predicates.
func (v Variant) Signature() Signature {
	return variantDefs[v].sig
}

func (v Variant) Postcondition() Cond {
	return variantDefs[v].post
}

type Encoder struct {
	sess    *z3session.Session
	variant Variant
	def     variantDef
}

func NewEncoder(sess *z3session.Session, variant Variant) (*Encoder, error) {
	def, ok := variantDefs[variant]
	if !ok {
		return nil, errors.Errorf("unknown variant %q", variant)
	}
	return &Encoder{sess: sess, variant: variant, def: def}, nil
}

// SetPostcondition replaces the variant's postcondition. It may mention the
// signature and, for the init variant, x0 and y0.
func (e *Encoder) SetPostcondition(post Cond) *Encoder {
	e.def.post = post
	return e
}

// Encode numbers the points of prog, declares their predicates and builds
// the rule set.
func (e *Encoder) Encode(prog Stmt) (*Encoding, error) {
	points, err := numberPoints(prog)
	if err != nil {
		return nil, err
	}
	ctx := e.sess.Context()
	declarePredicates(ctx, e.def.sig, points)

	var (
		b       = newRuleBuilder(ctx, e.def.sig)
		program []*Rule
	)
	for _, p := range points {
		rules, err := b.pointRules(p)
		if err != nil {
			return nil, err
		}
		program = append(program, rules...)
	}

	enc := &Encoding{
		Variant:       e.variant,
		Signature:     e.def.sig,
		Postcondition: e.def.post,
		Points:        points,
		sess:          e.sess,
	}
	if len(e.def.ghosts) == 0 {
		err = e.encodeDirect(b, enc, program)
	} else {
		err = e.encodeWithInit(b, enc, program)
	}
	if err != nil {
		return nil, err
	}
	log.Debugf("encoded %d points into %d rules (%s)", len(points), len(enc.Rules), e.variant)
	return enc, nil
}

// encodeDirect emits the program rules in pre-order, then pre => S0 and the
// query.
func (e *Encoder) encodeDirect(b *ruleBuilder, enc *Encoding, program []*Rule) error {
	pre, err := e.def.pre.formula(b.ctx, b.env)
	if err != nil {
		return errors.Wrap(err, "precondition")
	}
	post, err := e.def.post.formula(b.ctx, b.env)
	if err != nil {
		return errors.Wrap(err, "postcondition")
	}
	root := enc.Points[0]

	enc.Rules = append(program,
		b.rule("init", FamilyInit, -1, b.implies(b.vars, []*z3.Expr{pre}, b.apply(root.Start))),
		b.rule("query", FamilyQuery, -1, b.implies(b.vars,
			[]*z3.Expr{b.apply(root.End), b.ctx.MkNot(post)}, b.ctx.MkFalse())),
	)
	return nil
}

// encodeWithInit routes the precondition through the Init predicate:
//
//	pre(g) => Init(g)
//	Init(g) && entry => S0
//	Init(g0) && E0 && !post => false
//
// The program rules are grouped by family with the entry rule first and
// the Init rule and the query last.
func (e *Encoder) encodeWithInit(b *ruleBuilder, enc *Encoding, program []*Rule) error {
	ctx := b.ctx
	ghostSig := Signature(e.def.ghosts)
	for _, g := range ghostSig {
		if !e.def.sig.Contains(g) {
			return errors.Errorf("init parameter %q is not a program variable", g)
		}
	}
	initPred := ctx.MkFuncDecl(ctx.MkStringSymbol("Init"), ghostSig.sorts(ctx), ctx.MkBoolSort())
	enc.Init = initPred

	// pre(g) => Init(g), quantified over the ghost parameters only
	ghostVars, ghostEnv := ghostSig.consts(ctx)
	pre, err := e.def.pre.formula(ctx, ghostEnv)
	if err != nil {
		return errors.Wrap(err, "precondition")
	}
	initRule := b.rule("init_pred", FamilyInit, -1,
		b.implies(ghostVars, []*z3.Expr{pre}, ctx.MkApp(initPred, ghostVars...)))

	entry, err := e.def.entry.formula(ctx, b.env)
	if err != nil {
		return errors.Wrap(err, "entry condition")
	}
	root := enc.Points[0]
	initial := b.rule("init", FamilyInit, -1, b.implies(b.vars,
		[]*z3.Expr{ctx.MkApp(initPred, lo.Map(ghostSig, func(g string, _ int) *z3.Expr {
			return b.env[g]
		})...), entry},
		b.apply(root.Start)))

	// the query sees the signature plus a 0-suffixed copy of each ghost
	var (
		starts   = make([]*z3.Expr, len(ghostSig))
		queryEnv = make(env, len(b.env)+len(ghostSig))
	)
	for k, v := range b.env {
		queryEnv[k] = v
	}
	for i, g := range ghostSig {
		name := g + "0"
		if e.def.sig.Contains(name) {
			return errors.Errorf("initial value %q shadows a program variable", name)
		}
		starts[i] = ctx.MkIntConst(name)
		queryEnv[name] = starts[i]
	}
	post, err := e.def.post.formula(ctx, queryEnv)
	if err != nil {
		return errors.Wrap(err, "postcondition")
	}
	query := b.rule("query", FamilyQuery, -1, b.implies(append(append([]*z3.Expr{}, starts...), b.vars...),
		[]*z3.Expr{ctx.MkApp(initPred, starts...), b.apply(root.End), ctx.MkNot(post)},
		ctx.MkFalse()))

	enc.Rules = []*Rule{initial}
	for _, f := range []Family{FamilyAssign, FamilyCompose, FamilyWhile, FamilyIf, FamilySkip} {
		enc.Rules = append(enc.Rules, lo.Filter(program, func(r *Rule, _ int) bool {
			return r.Family == f
		})...)
	}
	enc.Rules = append(enc.Rules, initRule, query)
	return nil
}
