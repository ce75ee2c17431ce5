/*
main.go - Command-line payroll reports

PURPOSE:
  Builds a single worker, supervisor or 401k member from flags and prints
  its plain-text summary, or applies a builtin/file scenario and prints
  every entity it created. No server or state is involved.

COMMANDS:
  payroll report    [flags]          Summary of one entity
  payroll scenarios                  List builtin scenarios
  payroll scenario  <id> [--file f]  Apply a scenario and print summaries

EXAMPLES:
  payroll report --kind member --name "Marco Joseph" --number 134 \
    --shift DAY --rate 13 --hours 35 --amount 1000

  payroll scenario supervisor-bonus

SEE ALSO:
  - report/report.go: Summary format
  - scenario/scenario.go: Scenario files
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/compensation-engine/config"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "payroll",
		Short:         "Print payroll summaries for workers, supervisors and 401k members",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newReportCmd(), newScenariosCmd(), newScenarioCmd())
	return root
}

// newLogger logs to stderr so stdout stays a clean report.
func newLogger() *zap.Logger {
	lvl, err := config.ParseLevel(logLevel)
	if err != nil {
		return zap.NewNop()
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
