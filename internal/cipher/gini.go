package cipher

import (
	"context"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	log "github.com/sirupsen/logrus"
)

// giniBackend bit-blasts the byte constraints into an and-inverter circuit
// and hands the resulting CNF to gini.
//
// The key is eight circuit inputs. Since every ciphertext byte is a
// constant, plaintext bit j of byte c is key bit j, negated where bit j of c
// is set, so no gates are needed for the xor itself.
type giniBackend struct{}

func (b *giniBackend) Name() string {
	return BackendGini
}

func (b *giniBackend) Solve(ctx context.Context, p *Problem, exclude []byte) (Status, *Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, nil, err
	}
	var (
		c     = logic.NewC()
		key   = make([]z.Lit, 8)
		plain = make([][]z.Lit, len(p.Ciphertext))
		roots []z.Lit
	)
	for j := range key {
		key[j] = c.Lit()
	}
	for i, cb := range p.Ciphertext {
		plain[i] = xorConst(key, cb)
		if p.Constrained(i) {
			roots = append(roots, geqConst(c, plain[i], p.Alphabet.Min), leqConst(c, plain[i], p.Alphabet.Max))
		}
	}

	g := gini.New()
	c.ToCnf(g)
	for _, r := range roots {
		g.Add(r)
		g.Add(z.LitNull)
	}
	for _, e := range exclude {
		// at least one key bit differs from e
		for j := range key {
			if e>>uint(j)&1 == 1 {
				g.Add(key[j].Not())
			} else {
				g.Add(key[j])
			}
		}
		g.Add(z.LitNull)
	}
	log.Debugf("gini: %d range roots, %d exclusions", len(roots), len(exclude))

	switch g.Solve() {
	case 1:
	case -1:
		return Unsat, nil, nil
	default:
		return Unknown, nil, nil
	}

	value := func(m z.Lit) bool {
		// inputs that never reached a clause are unconstrained
		if m.Var() > g.MaxVar() {
			return !m.IsPos()
		}
		return g.Value(m)
	}
	cand := &Candidate{
		Key:       bitsValue(key, value),
		Plaintext: make([]byte, len(plain)),
	}
	for i := range plain {
		cand.Plaintext[i] = bitsValue(plain[i], value)
	}
	return Sat, cand, nil
}

func xorConst(bits []z.Lit, k byte) []z.Lit {
	out := make([]z.Lit, len(bits))
	for j := range bits {
		if k>>uint(j)&1 == 1 {
			out[j] = bits[j].Not()
		} else {
			out[j] = bits[j]
		}
	}
	return out
}

// geqConst builds bits >= k, unsigned, bits least significant first.
func geqConst(c *logic.C, bits []z.Lit, k byte) z.Lit {
	acc := c.T
	for j := range bits {
		if k>>uint(j)&1 == 1 {
			acc = c.And(bits[j], acc)
		} else {
			acc = c.Or(bits[j], acc)
		}
	}
	return acc
}

// leqConst builds bits <= k, unsigned, bits least significant first.
func leqConst(c *logic.C, bits []z.Lit, k byte) z.Lit {
	acc := c.T
	for j := range bits {
		if k>>uint(j)&1 == 1 {
			acc = c.Or(bits[j].Not(), acc)
		} else {
			acc = c.And(bits[j].Not(), acc)
		}
	}
	return acc
}

func bitsValue(bits []z.Lit, value func(z.Lit) bool) byte {
	var v byte
	for j := range bits {
		if value(bits[j]) {
			v |= 1 << uint(j)
		}
	}
	return v
}
