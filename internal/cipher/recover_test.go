package cipher

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	message67 = "veryniceyoudecryptedthecyphertextsuccessfully"
	message66 = "wdsxohbdxntedbsxqudeuidbxqidsudyurtbbdrrgtmmx"
)

func forEachBackend(t *testing.T, f func(t *testing.T, b Backend)) {
	for _, name := range Backends() {
		b, err := NewBackend(name)
		require.NoError(t, err)
		t.Run(name, func(t *testing.T) {
			f(t, b)
		})
	}
}

func Test_NewBackend(t *testing.T) {
	for _, name := range Backends() {
		b, err := NewBackend(name)
		require.NoError(t, err)
		assert.Equal(t, name, b.Name())
	}
	_, err := NewBackend("cvc5")
	assert.Error(t, err)
}

func Test_RecoverExample(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		res, err := NewRecoverer(b, 0).Recover(context.Background(), NewProblem(ExampleCiphertext))
		require.NoError(t, err)

		assert.Equal(t, Sat, res.Status)
		assert.True(t, res.Exhaustive)
		assert.True(t, res.Ambiguous())
		assert.ElementsMatch(t, []byte{66, 67}, res.Keys())

		got := map[byte]string{}
		for _, c := range res.Candidates {
			got[c.Key] = c.Message()
		}
		want := map[byte]string{66: message66, 67: message67}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("plaintexts mismatch (-want +got):\n%s", diff)
		}
	})
}

func Test_RecoverExcluded(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		p := NewProblem(ExampleCiphertext)
		p.Exclude = []byte{66}

		res, err := NewRecoverer(b, 0).Recover(context.Background(), p)
		require.NoError(t, err)
		require.Equal(t, Sat, res.Status)
		assert.False(t, res.Ambiguous())

		key, err := res.Key()
		require.NoError(t, err)
		assert.Equal(t, byte(67), key)
		msg, err := res.Plaintext()
		require.NoError(t, err)
		assert.Equal(t, message67, string(msg))
	})
}

func Test_RecoverFirst(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		res, err := NewRecoverer(b, 0).RecoverFirst(context.Background(), NewProblem(ExampleCiphertext))
		require.NoError(t, err)
		require.Equal(t, Sat, res.Status)
		require.Len(t, res.Candidates, 1)
		assert.Contains(t, []byte{66, 67}, res.Candidates[0].Key)
		assert.False(t, res.Exhaustive)
	})
}

func Test_RecoverEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		res, err := NewRecoverer(b, 0).Recover(context.Background(), NewProblem(nil))
		require.NoError(t, err)
		require.Equal(t, Sat, res.Status)
		require.Len(t, res.Candidates, 1)
		assert.Empty(t, res.Candidates[0].Plaintext)
	})
}

func Test_RecoverUnsat(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		// 0x00 needs a key in [97, 122] and 0x80 one in [225, 250]
		res, err := NewRecoverer(b, 0).Recover(context.Background(), NewProblem([]byte{0x00, 0x80}))
		require.NoError(t, err)
		assert.Equal(t, Unsat, res.Status)
		assert.True(t, res.Exhaustive)
		assert.Empty(t, res.Candidates)

		_, err = res.Key()
		assert.Error(t, err)
	})
}

func Test_RecoverRoundTrip(t *testing.T) {
	var testCases = []struct {
		message string
		key     byte
	}{
		{"attackatdawn", 0x5a},
		{"z", 0x01},
		{"hello", 0xff},
	}
	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, b Backend) {
				res, err := NewRecoverer(b, 0).Recover(context.Background(), NewProblem(Encode([]byte(tc.message), tc.key)))
				require.NoError(t, err)
				require.Equal(t, Sat, res.Status)
				assert.Contains(t, res.Keys(), tc.key)
				for _, c := range res.Candidates {
					assert.Equal(t, Encode([]byte(tc.message), tc.key^c.Key), c.Plaintext)
				}
			})
		})
	}
}

func Test_RecoverFree(t *testing.T) {
	// a space separator would be out of the alphabet without the free position
	ct := Encode([]byte("go fast"), 67)

	forEachBackend(t, func(t *testing.T, b Backend) {
		res, err := NewRecoverer(b, 0).Recover(context.Background(), NewProblem(ct))
		require.NoError(t, err)
		assert.NotContains(t, res.Keys(), byte(67))

		p := NewProblem(ct)
		p.Free = []int{2}
		res, err = NewRecoverer(b, 0).Recover(context.Background(), p)
		require.NoError(t, err)
		assert.Contains(t, res.Keys(), byte(67))
	})
}

func Test_RecoverLimit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		res, err := NewRecoverer(b, 1).Recover(context.Background(), NewProblem(ExampleCiphertext))
		require.NoError(t, err)
		assert.Len(t, res.Candidates, 1)
		assert.False(t, res.Exhaustive)
	})
}

func Test_RecoverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := NewBackend(BackendGini)
	require.NoError(t, err)
	_, err = NewRecoverer(b, 0).Recover(ctx, NewProblem(ExampleCiphertext))
	assert.ErrorIs(t, err, context.Canceled)
}

type badBackend struct{}

func (badBackend) Name() string { return "bad" }

func (badBackend) Solve(context.Context, *Problem, []byte) (Status, *Candidate, error) {
	return Sat, &Candidate{Key: 1, Plaintext: []byte{0}}, nil
}

func Test_RecoverRejectsBadModel(t *testing.T) {
	_, err := NewRecoverer(badBackend{}, 0).Recover(context.Background(), NewProblem([]byte{1}))
	assert.Error(t, err)
}

func Test_RecoverInvalid(t *testing.T) {
	p := &Problem{Ciphertext: []byte{1}, Alphabet: Alphabet{Min: 2, Max: 1}}
	_, err := NewRecoverer(badBackend{}, 0).Recover(context.Background(), p)
	assert.Error(t, err)
}

func Test_RecoverWholeKeySpace(t *testing.T) {
	b, err := NewBackend(BackendGini)
	require.NoError(t, err)

	var testCases = []struct {
		name    string
		exclude []byte
		want    int
	}{
		{"every key", nil, 256},
		{"some excluded", []byte{0, 1, 2, 2}, 253},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProblem([]byte{1, 2})
			p.Alphabet = Alphabet{Min: 0, Max: 255}
			p.Exclude = tc.exclude

			res, err := NewRecoverer(b, 0).Recover(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, Sat, res.Status)
			assert.Len(t, res.Candidates, tc.want)
			assert.True(t, res.Exhaustive)
		})
	}
}

func Test_BackendTimeout(t *testing.T) {
	b, err := NewBackend(BackendZ3, WithTimeout(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, b.(*z3Backend).timeout)

	res, err := NewRecoverer(b, 0).Recover(context.Background(), NewProblem(ExampleCiphertext))
	require.NoError(t, err)
	assert.ElementsMatch(t, []byte{66, 67}, res.Keys())

	// the other backends accept the option and ignore it
	_, err = NewBackend(BackendGini, WithTimeout(time.Minute))
	assert.NoError(t, err)
}
