package main

import (
	"context"
	goflag "flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

var (
	LogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "smtlab",
	Short: "smtlab, xor key recovery and horn clause verification on top of smt solvers",
	Long:  "",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(LogLevel)
		if err != nil {
			return errors.Wrap(err, "log-level")
		}
		log.SetLevel(level)
		log.SetOutput(os.Stderr)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

// signalContext is cancelled on interrupt, which stops a running solver.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func main() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	rootCmd.AddCommand(versionCommand)
	rootCmd.AddCommand(recoverCommand)
	rootCmd.AddCommand(verifyCommand)
	rootCmd.AddCommand(runCommand)

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
