/*
Package report renders human-readable summaries of compensation entities.

PURPOSE:
  The payroll package has no I/O. This package is the presentation layer:
  it reads entities only through their query accessors and produces the
  multi-line console summary used by the CLI and the API's text endpoint.

LAYOUT:
  Marco Joseph # 134 (Benefits)
  Shift: DAY
  $13.00 per hour
  35 hours this week
  $455.00 gross pay
  Account #123-4567890
  Monthly Pay $1820.00
  Amount contributed: $1000.00
  Max match: $91.00
  Actual Match: $91.00

  Supervisors print salary, shift, worker count and then one indented
  block per rostered worker instead of the hourly lines.
*/
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/compensation-engine/payroll"
)

// Write renders v, which must be one of *payroll.Employee,
// *payroll.ProductionWorker, *payroll.ShiftSupervisor or *payroll.Member401k.
func Write(w io.Writer, v any) error {
	var b strings.Builder
	switch e := v.(type) {
	case *payroll.Member401k:
		member(&b, e)
	case *payroll.ShiftSupervisor:
		header(&b, &e.Employee)
		supervision(&b, e.Shift(), &e.Supervision)
	case *payroll.ProductionWorker:
		header(&b, &e.Employee)
		hourly(&b, e.Shift(), &e.HourlyPay)
	case *payroll.Employee:
		header(&b, e)
	default:
		return fmt.Errorf("report: unsupported type %T", v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders v, or returns an empty string for unsupported types.
func String(v any) string {
	var b strings.Builder
	if err := Write(&b, v); err != nil {
		return ""
	}
	return b.String()
}

// Money formats a whole-dollar amount as $N.NN.
func Money(n int) string {
	return "$" + decimal.NewFromInt(int64(n)).StringFixed(2)
}

// =============================================================================
// SECTIONS
// =============================================================================

func header(b *strings.Builder, e *payroll.Employee) {
	benefits := "No Benefits"
	if e.HasBenefits() {
		benefits = "Benefits"
	}
	fmt.Fprintf(b, "%s # %d (%s)\n", e.Name(), e.Number(), benefits)
}

func hourly(b *strings.Builder, shift payroll.Shift, p *payroll.HourlyPay) {
	fmt.Fprintf(b, "Shift: %s\n", shift)
	fmt.Fprintf(b, "%s per hour\n", Money(p.HourlyRate()))
	fmt.Fprintf(b, "%d hours this week\n", p.HoursWorked())
	fmt.Fprintf(b, "%s gross pay\n", Money(p.WeeklyPay()))
}

func supervision(b *strings.Builder, shift payroll.Shift, s *payroll.Supervision) {
	fmt.Fprintf(b, "Salary %s\n", Money(s.Salary()))
	fmt.Fprintf(b, "Shift: %s\n", shift)
	fmt.Fprintf(b, "%d workers in their shift\n", s.WorkerCount())

	roster := s.Roster()
	if len(roster) == 0 {
		return
	}
	b.WriteString("Workers:\n")
	for _, w := range roster {
		var sub strings.Builder
		header(&sub, &w.Employee)
		hourly(&sub, w.Shift(), &w.HourlyPay)
		for _, line := range strings.SplitAfter(strings.TrimSuffix(sub.String(), "\n"), "\n") {
			b.WriteString("  " + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
}

func member(b *strings.Builder, m *payroll.Member401k) {
	header(b, &m.Employee)
	if m.IsSupervisorRole() {
		supervision(b, m.Shift(), &m.Supervision)
	} else {
		hourly(b, m.Shift(), &m.HourlyPay)
	}
	fmt.Fprintf(b, "Account #%s\n", m.AccountNumber())
	fmt.Fprintf(b, "Monthly Pay %s\n", Money(m.MonthlyPay()))
	fmt.Fprintf(b, "Amount contributed: %s\n", Money(m.ContributedAmount()))
	fmt.Fprintf(b, "Max match: %s\n", Money(m.MaxMatch()))
	fmt.Fprintf(b, "Actual Match: %s\n", Money(m.ActualMatch()))
}
