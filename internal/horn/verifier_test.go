package horn

import (
	"context"
	"testing"
	"time"

	"smtlab/internal/z3session"

	z3 "github.com/Z3Prover/z3/src/api/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RunVariants(t *testing.T) {
	var testCases = []struct {
		name string
		opts Options
		want Verdict
	}{
		{"plain", Options{Variant: Plain}, Proven},
		{"tracked", Options{Variant: Tracked}, Proven},
		// Init(x0, y0) in the query is not tied to the start of the run that
		// reached E0, so x0 = y0 = 1 with a run from x = y = 2 violates it
		{"init", Options{Variant: InitPredicate}, Refuted},
		{"init exit x", Options{Variant: InitPredicate, Postcondition: Eq{Var("x"), Const(0)}}, Proven},
		{"plain wrong post", Options{Variant: Plain, Postcondition: Eq{Var("x"), Const(1)}}, Refuted},
		{"tracked wrong post", Options{
			Variant:       Tracked,
			Postcondition: Eq{Var("z"), Add{Add{Var("x0"), Var("y0")}, Const(1)}},
		}, Refuted},
		{"init wrong exit x", Options{Variant: InitPredicate, Postcondition: Eq{Var("x"), Const(1)}}, Refuted},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Run(context.Background(), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Verdict, out.Script)

			switch tc.want {
			case Proven:
				assert.Equal(t, z3.Satisfiable, out.Status)
				assert.NotEmpty(t, out.Model)
			case Refuted:
				assert.Equal(t, z3.Unsatisfiable, out.Status)
				assert.Empty(t, out.Model)
			}
		})
	}
}

func Test_RunOrderInsensitive(t *testing.T) {
	holds := map[Variant]Cond{
		Plain:         Eq{Var("x"), Const(0)},
		Tracked:       Eq{Var("z"), Add{Var("x0"), Var("y0")}},
		InitPredicate: Eq{Var("x"), Const(0)},
	}
	for _, v := range Variants() {
		for _, o := range Orders() {
			t.Run(string(v)+"/"+string(o), func(t *testing.T) {
				out, err := Run(context.Background(), Options{Variant: v, Order: o, Postcondition: holds[v]})
				require.NoError(t, err)
				assert.Equal(t, Proven, out.Verdict)

				out, err = Run(context.Background(), Options{
					Variant:       v,
					Order:         o,
					Postcondition: Eq{Var("z"), Const(-1)},
				})
				require.NoError(t, err)
				assert.Equal(t, Refuted, out.Verdict)
			})
		}
	}
}

func Test_RunIf(t *testing.T) {
	// if x > 5 { z = x } else { z = 5 }; the result is never below 5
	prog := If{
		Cond: Gt{Var("x"), Const(5)},
		Then: Assign{Var: "z", Expr: Var("x")},
		Else: Seq{Stmts: []Stmt{Skip{}, Assign{Var: "z", Expr: Const(5)}}},
	}
	out, err := Run(context.Background(), Options{
		Variant:       Plain,
		Program:       prog,
		Postcondition: Not{Lt{Var("z"), Const(5)}},
	})
	require.NoError(t, err)
	assert.Equal(t, Proven, out.Verdict)

	out, err = Run(context.Background(), Options{
		Variant:       Plain,
		Program:       prog,
		Postcondition: Eq{Var("z"), Const(5)},
	})
	require.NoError(t, err)
	assert.Equal(t, Refuted, out.Verdict)
}

func Test_VerifyOnce(t *testing.T) {
	enc := encode(t, Plain)
	v := NewVerifier(OrderOriginal)

	out, err := v.Verify(context.Background(), enc)
	require.NoError(t, err)
	assert.Equal(t, Proven, out.Verdict)
	assert.Equal(t, 14, out.Rules)
	assert.Contains(t, out.Script, "S0")

	_, err = v.Verify(context.Background(), enc)
	assert.Error(t, err)
}

func Test_VerifyWrongLogic(t *testing.T) {
	sess := z3session.New(z3session.Config{Logic: z3session.LogicBV})
	defer sess.Close()

	e, err := NewEncoder(sess, Plain)
	require.NoError(t, err)
	enc, err := e.Encode(ExampleProgram())
	require.NoError(t, err)

	_, err = NewVerifier(OrderOriginal).Verify(context.Background(), enc)
	assert.Error(t, err)
}

func Test_RunWithConfig(t *testing.T) {
	out, err := Run(context.Background(), Options{
		Variant: Tracked,
		Session: z3session.Config{Proof: true, Timeout: time.Minute},
	})
	require.NoError(t, err)
	assert.Equal(t, Proven, out.Verdict)
}

func Test_verdictOf(t *testing.T) {
	assert.Equal(t, Proven, verdictOf(z3.Satisfiable))
	assert.Equal(t, Refuted, verdictOf(z3.Unsatisfiable))
	assert.Equal(t, Undecided, verdictOf(z3.Unknown))
	assert.Equal(t, "proven", Proven.String())
	assert.Equal(t, "undecided", Undecided.String())
}

func Test_RunInterrupted(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, stop := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer stop()

	var testCases = []struct {
		name string
		ctx  context.Context
		want error
	}{
		{"canceled", canceled, context.Canceled},
		{"deadline", expired, context.DeadlineExceeded},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range Variants() {
				out, err := Run(tc.ctx, Options{Variant: v})
				assert.ErrorIs(t, err, tc.want, string(v))
				require.NotNil(t, out, string(v))
				assert.Equal(t, z3.Unknown, out.Status)
				assert.Equal(t, Undecided, out.Verdict)
				assert.NotEmpty(t, out.Reason)
				assert.Empty(t, out.Model)
			}
		})
	}
}
