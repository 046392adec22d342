package exercise

import (
	"context"
	"testing"

	"smtlab/internal/cipher"
	"smtlab/internal/horn"
	"smtlab/internal/report"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExercise struct {
	BaseExercise
	verdict string
	err     error
	runs    int
}

func newFake(name, verdict string, err error) *fakeExercise {
	return &fakeExercise{
		BaseExercise: BaseExercise{name: name, description: "fake"},
		verdict:      verdict,
		err:          err,
	}
}

func (f *fakeExercise) Run(context.Context) (*report.Report, error) {
	f.runs++
	if f.err != nil {
		return nil, f.err
	}
	rep := report.New(f.Name())
	rep.Verdict = f.verdict
	return rep, nil
}

func Test_Manager(t *testing.T) {
	mm := NewManager()
	mm.AddExercise(newFake("a", "proven", nil))
	mm.AddExercise(newFake("b", "proven", nil))
	mm.AddExercise(newFake("a", "refuted", nil))
	assert.Equal(t, []string{"a", "b"}, mm.Names())

	e, err := mm.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "refuted", e.(*fakeExercise).verdict)

	_, err = mm.Get("c")
	assert.Error(t, err)
}

func Test_DefaultManager(t *testing.T) {
	assert.Equal(t, []string{"xor-key", "horn-plain", "horn-tracked", "horn-init"}, NewDefaultManager().Names())
}

func Test_Runner(t *testing.T) {
	var (
		a  = newFake("a", "proven", nil)
		b  = newFake("b", "refuted", nil)
		mm = NewManager()
	)
	mm.AddExercise(a)
	mm.AddExercise(b)

	reports, err := NewRunner(mm).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "proven", reports[0].Verdict)
	assert.Equal(t, "refuted", reports[1].Verdict)

	reports, err = NewRunner(mm).Run(context.Background(), "b")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 2, b.runs)
	assert.Equal(t, 1, a.runs)

	_, err = NewRunner(mm).Run(context.Background(), "nope")
	assert.Error(t, err)
	_, err = NewRunner(NewManager()).Run(context.Background())
	assert.Error(t, err)
}

func Test_RunnerStopsOnError(t *testing.T) {
	var (
		boom = errors.New("boom")
		c    = newFake("c", "proven", nil)
		mm   = NewManager()
	)
	mm.AddExercise(newFake("a", "proven", nil))
	mm.AddExercise(newFake("b", "", boom))
	mm.AddExercise(c)

	reports, err := NewRunner(mm).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, reports, 1)
	assert.Equal(t, 0, c.runs)
}

func Test_XorKey(t *testing.T) {
	var testCases = []struct {
		name    string
		cfg     XorKeyConfig
		verdict string
		status  string
	}{
		{"example", XorKeyConfig{Backend: cipher.BackendGini}, "ambiguous", "sat"},
		{"excluded", XorKeyConfig{
			Backend: cipher.BackendGini,
			Problem: &cipher.Problem{Ciphertext: cipher.ExampleCiphertext, Alphabet: cipher.Lowercase, Exclude: []byte{66}},
		}, "unique", "sat"},
		{"first", XorKeyConfig{Backend: cipher.BackendGini, First: true}, "recovered", "sat"},
		{"unsat", XorKeyConfig{Backend: cipher.BackendGini, Problem: cipher.NewProblem([]byte{0x00, 0x80})}, "no key", "unsat"},
		{"empty", XorKeyConfig{Backend: cipher.BackendGini, Problem: cipher.NewProblem([]byte{})}, "any key", "sat"},
		{"empty first", XorKeyConfig{Backend: cipher.BackendGini, Problem: cipher.NewProblem([]byte{}), First: true}, "any key", "sat"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := NewXorKey(tc.cfg).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, XorKeyName, rep.Exercise)
			assert.Equal(t, tc.verdict, rep.Verdict)
			assert.Equal(t, tc.status, rep.Status)
		})
	}

	rep, err := NewXorKey(XorKeyConfig{Backend: cipher.BackendGini}).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, rep.Details, "message: veryniceyoudecryptedthecyphertextsuccessfully")

	rep, err = NewXorKey(XorKeyConfig{Backend: cipher.BackendGini, Problem: cipher.NewProblem([]byte{})}).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.Success())
	assert.Contains(t, rep.Details, "every key outside [] decodes the empty ciphertext")

	_, err = NewXorKey(XorKeyConfig{Backend: "nope"}).Run(context.Background())
	assert.Error(t, err)
}

func Test_Horn(t *testing.T) {
	want := map[string]string{
		"horn-plain":   "proven",
		"horn-tracked": "proven",
		"horn-init":    "refuted",
	}
	for _, e := range NewHornExercises(HornConfig{Order: horn.OrderSwapped, Dump: true}) {
		t.Run(e.Name(), func(t *testing.T) {
			rep, err := e.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want[e.Name()], rep.Verdict)
			assert.NotEmpty(t, rep.Details)
		})
	}
}
