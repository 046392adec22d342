package horn

import (
	"smtlab/internal/z3session"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Order permutes a rule set before assertion. The verdict must not depend
// on it.
type Order string

const (
	OrderOriginal Order = "original"
	OrderReversed Order = "reversed"
	// OrderSwapped reverses the sub-rules of every sequence block in place.
	OrderSwapped Order = "swapped"
)

func Orders() []Order {
	return []Order{OrderOriginal, OrderReversed, OrderSwapped}
}

func ParseOrder(s string) (Order, error) {
	o := Order(s)
	if !lo.Contains(Orders(), o) {
		return "", errors.Errorf("unknown order %q, want one of %v", s, Orders())
	}
	return o, nil
}

// Encoding is the rule set of one program under one variant. It is tied to
// the session whose context created its terms.
type Encoding struct {
	Variant       Variant
	Signature     Signature
	Postcondition Cond
	Points        []*Point
	// Rules is in assertion order.
	Rules []*Rule
	// Init is only set for the init variant.
	Init *z3.FuncDecl

	sess    *z3session.Session
	checked bool
}

func (e *Encoding) Session() *z3session.Session {
	return e.sess
}

func (e *Encoding) Point(i int) (*Point, error) {
	if i < 0 || i >= len(e.Points) {
		return nil, errors.Errorf("no point %d, have %d", i, len(e.Points))
	}
	return e.Points[i], nil
}

func (e *Encoding) Family(f Family) []*Rule {
	return lo.Filter(e.Rules, func(r *Rule, _ int) bool {
		return r.Family == f
	})
}

func (e *Encoding) Rule(name string) (*Rule, bool) {
	return lo.Find(e.Rules, func(r *Rule) bool {
		return r.Name == name
	})
}

func RuleNames(rules []*Rule) []string {
	return lo.Map(rules, func(r *Rule, _ int) string {
		return r.Name
	})
}

// Order returns a permuted copy of the rules. The encoding is left as is.
func (e *Encoding) Order(o Order) ([]*Rule, error) {
	rules := append([]*Rule(nil), e.Rules...)
	switch o {
	case OrderOriginal, "":
		return rules, nil
	case OrderReversed:
		return lo.Reverse(rules), nil
	case OrderSwapped:
		blocks := lo.GroupBy(lo.Range(len(rules)), func(i int) int {
			if rules[i].Family != FamilyCompose {
				return -1
			}
			return rules[i].Point
		})
		for point, idx := range blocks {
			if point < 0 {
				continue
			}
			block := lo.Reverse(lo.Map(idx, func(i int, _ int) *Rule {
				return rules[i]
			}))
			for j, i := range idx {
				rules[i] = block[j]
			}
		}
		return rules, nil
	}
	return nil, errors.Errorf("unknown order %q", o)
}
