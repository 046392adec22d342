// Package cipher recovers a single-byte XOR key from a ciphertext under the
// assumption that every plaintext byte falls into a known alphabet.
package cipher

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ExampleCiphertext is the ciphertext of the exercise.
var ExampleCiphertext = []byte{
	53, 38, 49, 58, 45, 42, 32, 38, 58, 44, 54, 39, 38, 32, 49, 58, 51, 55, 38, 39, 55, 43, 38,
	32, 58, 51, 43, 38, 49, 55, 38, 59, 55, 48, 54, 32, 32, 38, 48, 48, 37, 54, 47, 47, 58,
}

// Alphabet is an inclusive byte range.
type Alphabet struct {
	Min byte
	Max byte
}

// Lowercase is the lowercase ASCII letters, 97 to 122.
var Lowercase = Alphabet{Min: 'a', Max: 'z'}

func (a Alphabet) Contains(b byte) bool {
	return a.Min <= b && b <= a.Max
}

type Problem struct {
	Ciphertext []byte
	Alphabet   Alphabet
	// Free positions carry no alphabet constraint.
	Free []int
	// Exclude lists key values that are ruled out up front.
	Exclude []byte
}

func NewProblem(ciphertext []byte) *Problem {
	return &Problem{
		Ciphertext: ciphertext,
		Alphabet:   Lowercase,
	}
}

func (p *Problem) Validate() error {
	if p.Alphabet.Min > p.Alphabet.Max {
		return errors.Errorf("empty alphabet [%d, %d]", p.Alphabet.Min, p.Alphabet.Max)
	}
	for _, i := range p.Free {
		if i < 0 || i >= len(p.Ciphertext) {
			return errors.Errorf("free position %d out of range [0, %d)", i, len(p.Ciphertext))
		}
	}
	return nil
}

// Constrained reports whether position i must decode into the alphabet.
func (p *Problem) Constrained(i int) bool {
	return !lo.Contains(p.Free, i)
}

// Verify checks a candidate against every constraint of the problem.
func (p *Problem) Verify(c *Candidate) error {
	if len(c.Plaintext) != len(p.Ciphertext) {
		return errors.Errorf("plaintext has %d bytes, ciphertext %d", len(c.Plaintext), len(p.Ciphertext))
	}
	if lo.Contains(p.Exclude, c.Key) {
		return errors.Errorf("key %d is excluded", c.Key)
	}
	for i, b := range p.Ciphertext {
		if b^c.Key != c.Plaintext[i] {
			return errors.Errorf("position %d: %d xor %d != %d", i, b, c.Key, c.Plaintext[i])
		}
		if p.Constrained(i) && !p.Alphabet.Contains(c.Plaintext[i]) {
			return errors.Errorf("position %d: %d outside [%d, %d]", i, c.Plaintext[i], p.Alphabet.Min, p.Alphabet.Max)
		}
	}
	return nil
}

// Encode xors every byte with key. It is its own inverse.
func Encode(data []byte, key byte) []byte {
	return lo.Map(data, func(b byte, _ int) byte {
		return b ^ key
	})
}

// firstAllowedKey picks the smallest key not in exclude. It stands in for
// the model value when the key occurs in no constraint at all.
func firstAllowedKey(exclude []byte) (byte, bool) {
	for k := 0; k < 256; k++ {
		if !lo.Contains(exclude, byte(k)) {
			return byte(k), true
		}
	}
	return 0, false
}
