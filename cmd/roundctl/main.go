// Command roundctl answers round and week questions offline, without the service.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/2beens/roundtracker/internal/rounds"
)

var timezone string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "roundctl",
		Short:        "Inspect 12-week rounds and check records against them",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "IANA timezone rounds are computed in (default: system)")

	rootCmd.AddCommand(newWeeksCmd())
	rootCmd.AddCommand(newWeekOfCmd())
	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}

func newCalculator() (*rounds.Calculator, error) {
	if timezone == "" {
		return rounds.NewCalculator(time.Local), nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return rounds.NewCalculator(loc), nil
}
