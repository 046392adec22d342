package main

import (
	"fmt"
	"os"
	"time"

	"smtlab/internal/cipher"
	"smtlab/internal/exercise"
	"smtlab/internal/smt"
	"smtlab/internal/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var recoverCommand = &cobra.Command{
	Use:   "recover",
	Short: "recover a single-byte xor key",
	Long:  `Find every key that maps the ciphertext into the alphabet. Without --cipher or --hex the example ciphertext is used.`,
	Run: func(*cobra.Command, []string) {
		if err := recoverExec(); err != nil {
			fmt.Printf("service err: %v\n", err)
			os.Exit(1)
		}
	},
}

var (
	CipherList     string
	CipherHex      string
	Backend        string
	First          bool
	Exclude        string
	Free           string
	AlphaMin       int
	AlphaMax       int
	Limit          int
	RecoverTimeout time.Duration
)

func init() {
	flags := recoverCommand.Flags()
	flags.StringVar(&CipherList, "cipher", "", "ciphertext as comma separated bytes, e.g. 53,38,49")
	flags.StringVar(&CipherHex, "hex", "", "ciphertext as hex, e.g. 0x352631")
	flags.StringVar(&Backend, "backend", cipher.BackendYices, "solver backend: yices, z3 or gini")
	flags.BoolVar(&First, "first", false, "stop at the first model")
	flags.StringVar(&Exclude, "exclude", "", "keys to rule out, comma separated")
	flags.StringVar(&Free, "free", "", "ciphertext positions without the alphabet constraint, comma separated")
	flags.IntVar(&AlphaMin, "min", int(cipher.Lowercase.Min), "smallest plaintext byte")
	flags.IntVar(&AlphaMax, "max", int(cipher.Lowercase.Max), "largest plaintext byte")
	flags.IntVar(&Limit, "limit", cipher.DefaultLimit, "maximum number of keys to enumerate")
	flags.DurationVar(&RecoverTimeout, "timeout", 0, "z3 timeout per solver call, 0 for none")
}

func recoverProblem() (*cipher.Problem, error) {
	var (
		ciphertext = cipher.ExampleCiphertext
		err        error
	)
	switch {
	case CipherList != "" && CipherHex != "":
		return nil, errors.New("--cipher and --hex are exclusive")
	case CipherList != "":
		if ciphertext, err = util.ParseByteList(CipherList); err != nil {
			return nil, errors.Wrap(err, "--cipher")
		}
	case CipherHex != "":
		if ciphertext, err = util.ParseHexBytes(CipherHex); err != nil {
			return nil, errors.Wrap(err, "--hex")
		}
	}
	if AlphaMin < 0 || AlphaMin > 255 || AlphaMax < 0 || AlphaMax > 255 {
		return nil, errors.Errorf("alphabet [%d, %d] is not a byte range", AlphaMin, AlphaMax)
	}

	p := cipher.NewProblem(ciphertext)
	p.Alphabet = cipher.Alphabet{Min: byte(AlphaMin), Max: byte(AlphaMax)}
	if p.Exclude, err = util.ParseByteList(Exclude); err != nil {
		return nil, errors.Wrap(err, "--exclude")
	}
	if p.Free, err = util.ParseIntList(Free); err != nil {
		return nil, errors.Wrap(err, "--free")
	}
	return p, p.Validate()
}

func recoverExec() error {
	p, err := recoverProblem()
	if err != nil {
		return err
	}
	if Backend == cipher.BackendYices {
		smt.Init()
		defer smt.Exit()
	}

	ctx, cancel := signalContext()
	defer cancel()

	rep, err := exercise.NewXorKey(exercise.XorKeyConfig{
		Problem: p,
		Backend: Backend,
		Timeout: RecoverTimeout,
		Limit:   Limit,
		First:   First,
	}).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(rep)
	return nil
}
