package main

import (
	"fmt"
	"os"
	"time"

	"smtlab/internal/exercise"
	"smtlab/internal/horn"
	"smtlab/internal/z3session"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var verifyCommand = &cobra.Command{
	Use:   "verify",
	Short: "verify the example loop with horn clauses",
	Long:  `Encode z = y; while 0 < x { z = z+1; x = x-1 } as horn clauses and let z3 decide the postcondition.`,
	Run: func(*cobra.Command, []string) {
		if err := verifyExec(); err != nil {
			fmt.Printf("service err: %v\n", err)
			os.Exit(1)
		}
	},
}

var (
	VariantName string
	OrderName   string
	Proof       bool
	Timeout     time.Duration
	Dump        bool
)

func init() {
	flags := verifyCommand.Flags()
	flags.StringVar(&VariantName, "variant", "all", "encoding: plain, tracked, init or all")
	flags.StringVar(&OrderName, "order", string(horn.OrderOriginal), "rule order: original, reversed or swapped")
	flags.BoolVar(&Proof, "proof", false, "enable proof production")
	flags.DurationVar(&Timeout, "timeout", 0, "solver timeout, 0 for none")
	flags.BoolVar(&Dump, "dump", false, "print the asserted smt-lib2 script")
}

func verifyExec() error {
	order, err := horn.ParseOrder(OrderName)
	if err != nil {
		return errors.Wrap(err, "--order")
	}
	variants := horn.Variants()
	if VariantName != "all" {
		v, err := horn.ParseVariant(VariantName)
		if err != nil {
			return errors.Wrap(err, "--variant")
		}
		variants = []horn.Variant{v}
	}

	cfg := exercise.HornConfig{
		Order:   order,
		Session: z3session.Config{Proof: Proof, Timeout: Timeout},
		Dump:    Dump,
	}
	mm := exercise.NewManager()
	for _, v := range variants {
		mm.AddExercise(exercise.NewHorn(v, cfg))
	}

	ctx, cancel := signalContext()
	defer cancel()

	reports, err := exercise.NewRunner(mm).Run(ctx)
	if err != nil {
		return err
	}
	for _, rep := range reports {
		fmt.Println(rep)
	}
	return nil
}
