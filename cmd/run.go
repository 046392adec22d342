package main

import (
	"fmt"
	"os"
	"time"

	"smtlab/internal/exercise"
	"smtlab/internal/smt"

	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run [exercise...]",
	Short: "run the built-in exercises",
	Long:  ``,
	Run: func(_ *cobra.Command, args []string) {
		if err := runExec(args); err != nil {
			fmt.Printf("service err: %v\n", err)
			os.Exit(1)
		}
	},
}

func runExec(names []string) error {
	smt.Init()
	defer smt.Exit()

	ctx, cancel := signalContext()
	defer cancel()

	startTime := time.Now()
	reports, err := exercise.NewRunner(exercise.NewDefaultManager()).Run(ctx, names...)
	if err != nil {
		return err
	}
	for _, rep := range reports {
		fmt.Println(rep)
	}
	fmt.Println("run time used: ", time.Since(startTime).Seconds())
	return nil
}
