package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/compensation-engine/payroll"
	"github.com/warp/compensation-engine/registry"
	"github.com/warp/compensation-engine/report"
	"github.com/warp/compensation-engine/scenario"
)

// =============================================================================
// REPORT COMMAND
// =============================================================================

// flagFields maps CLI flags to payroll fields. Only flags set on the
// command line are supplied, so role resolution and defaulting see the
// same presence rules as the API.
var flagFields = []struct {
	flag  string
	field payroll.Field
	text  bool
}{
	{"name", payroll.FieldName, true},
	{"number", payroll.FieldNumber, false},
	{"shift", payroll.FieldShift, false},
	{"rate", payroll.FieldRate, false},
	{"hours", payroll.FieldHours, false},
	{"salary", payroll.FieldSalary, false},
	{"capacity", payroll.FieldCapacity, false},
	{"worker-count", payroll.FieldWorkerCount, false},
	{"account", payroll.FieldAccountNumber, true},
	{"amount", payroll.FieldContributedAmount, false},
}

func newReportCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build one entity from flags and print its summary",
		Long: `Builds a worker, supervisor or 401k member from the supplied flags.
Invalid values are replaced by defaults and listed on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()
			fields := fieldsFromFlags(cmd)

			var (
				v         any
				defaulted []payroll.Field
			)
			switch kind {
			case "worker":
				w := payroll.NewProductionWorker(fields)
				v, defaulted = w, w.DefaultedFields()
			case "supervisor":
				s := payroll.NewShiftSupervisor(fields)
				v, defaulted = s, s.DefaultedFields()
			case "member":
				m := payroll.NewMember401k(fields)
				v, defaulted = m, m.DefaultedFields()
				logger.Debug("member role resolved", zap.String("role", string(m.Role())))
			default:
				return fmt.Errorf("unknown kind %q (worker, supervisor, member)", kind)
			}
			for _, f := range defaulted {
				logger.Warn("field replaced by default", zap.String("field", string(f)))
			}
			return report.Write(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "member", "entity kind: worker, supervisor or member")
	for _, ff := range flagFields {
		cmd.Flags().String(ff.flag, "", "value for "+string(ff.field))
	}
	return cmd
}

// fieldsFromFlags builds a field bag from the flags that were set. Numeric
// text becomes json.Number so the payroll validators see it as an integer
// candidate; anything else is passed through as a string and defaulted.
func fieldsFromFlags(cmd *cobra.Command) payroll.Fields {
	fields := payroll.Fields{}
	for _, ff := range flagFields {
		fl := cmd.Flags().Lookup(ff.flag)
		if fl == nil || !fl.Changed {
			continue
		}
		raw := fl.Value.String()
		if ff.text {
			fields[ff.field] = raw
			continue
		}
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			fields[ff.field] = json.Number(raw)
		} else {
			fields[ff.field] = raw
		}
	}
	return fields
}

// =============================================================================
// SCENARIO COMMANDS
// =============================================================================

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List builtin scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range scenario.Builtin() {
				fmt.Fprintf(out, "%-18s %-10s %s\n", s.ID, s.Category, s.Description)
			}
			return nil
		},
	}
}

func newScenarioCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "scenario [id]",
		Short: "Apply a scenario and print a summary of every entity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			var (
				s   *scenario.Scenario
				err error
			)
			switch {
			case file != "":
				s, err = scenario.LoadFile(file)
			case len(args) == 1:
				s, err = scenario.Get(args[0])
			default:
				return errors.New("a scenario id or --file is required")
			}
			if err != nil {
				return err
			}

			reg := registry.NewMemory()
			res, err := s.Apply(reg)
			if err != nil {
				return err
			}
			for _, a := range res.Assignments {
				if a.Err != nil {
					logger.Warn("roster full", zap.String("supervisor", a.Supervisor), zap.String("worker", a.Worker))
				}
			}
			return printScenario(cmd, reg, s, res)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML scenario file instead of a builtin id")
	return cmd
}

func printScenario(cmd *cobra.Command, reg *registry.Memory, s *scenario.Scenario, res *scenario.Result) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "== %s ==\n", s.Name)

	keys := make([]string, 0, len(res.IDs))
	for k := range res.IDs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	show := func(v any) error {
		fmt.Fprintln(out)
		return report.Write(out, v)
	}
	for _, k := range keys {
		id := res.IDs[k]
		err := reg.ReadMember(id, func(m *payroll.Member401k) error { return show(m) })
		if errors.Is(err, registry.ErrNotFound) {
			err = reg.ReadSupervisor(id, func(sup *payroll.ShiftSupervisor) error { return show(sup) })
		}
		if errors.Is(err, registry.ErrNotFound) {
			err = reg.ReadWorker(id, func(w *payroll.ProductionWorker) error { return show(w) })
		}
		if err != nil {
			return err
		}
	}
	return nil
}
