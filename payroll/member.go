/*
member.go - 401k plan membership

PURPOSE:
  Member401k is a single entity carrying both the supervisor field set
  (salary, roster) and the worker field set (rate, hours), plus a Role tag
  that selects which one sizes the retirement match.

ROLE RESOLUTION (explicit precedence):
  1. rate supplied           -> RoleWorker
  2. else salary supplied    -> RoleSupervisor
  3. else                    -> RoleWorker (monthly pay 0)
  Rate presence always overrides salary presence; hours alone do not.

MATCH DERIVATION:
  monthlyPay  = salary / 12             (supervisor, stored salary)
              = GrossPay(rate, hours)*4 (worker, supplied raw values)
  maxMatch    = floor(monthlyPay * 0.05)
  actualMatch = min(contributedAmount, maxMatch)

  maxMatch is computed once at construction. Later changes to rate, hours
  or salary do not move it until RecalculateMatch is called. Changing the
  contribution always recomputes actualMatch against the current maxMatch.

EXAMPLE:
  m := payroll.NewMember401k(payroll.Fields{
      payroll.FieldName: "Marco Joseph", payroll.FieldNumber: 134,
      payroll.FieldRate: 13, payroll.FieldHours: 35,
      payroll.FieldContributedAmount: 1000,
  })
  m.MaxMatch()    // 91  (455 * 4 * 0.05)
  m.ActualMatch() // 91
*/
package payroll

import "github.com/shopspring/decimal"

// MatchRate is the share of monthly pay the plan matches.
var MatchRate = decimal.RequireFromString("0.05")

const (
	monthsPerYear = 12
	weeksPerMonth = 4
)

// Member401k is an employee enrolled in the 401k plan.
type Member401k struct {
	ShiftSupervisor
	HourlyPay

	role              Role
	accountNumber     string
	contributedAmount int
	maxMatch          int
	actualMatch       int
}

// NewMember401k builds a member from any combination of the employee,
// worker, supervisor and plan fields of f.
func NewMember401k(f Fields) *Member401k {
	m := &Member401k{}
	m.Employee.init(f)
	m.ShiftAssignment.init(f, &m.Employee)
	m.Supervision.init(f, &m.Employee)
	m.HourlyPay.init(f, &m.Employee)

	m.role = ResolveRole(f)
	m.track(f, FieldAccountNumber, m.SetAccountNumber(f.Get(FieldAccountNumber)))

	var monthly int
	if m.role == RoleSupervisor {
		monthly = m.salary / monthsPerYear
	} else {
		monthly = GrossPay(f.Get(FieldRate), f.Get(FieldHours)) * weeksPerMonth
	}
	m.maxMatch = matchFor(monthly)

	m.track(f, FieldContributedAmount, m.SetContributedAmount(f.Get(FieldContributedAmount)))
	return m
}

// ResolveRole applies the role precedence to a field bag.
func ResolveRole(f Fields) Role {
	if f.Has(FieldRate) {
		return RoleWorker
	}
	if f.Has(FieldSalary) {
		return RoleSupervisor
	}
	return RoleWorker
}

func (m *Member401k) Role() Role             { return m.role }
func (m *Member401k) IsSupervisorRole() bool { return m.role == RoleSupervisor }
func (m *Member401k) AccountNumber() string  { return m.accountNumber }
func (m *Member401k) ContributedAmount() int { return m.contributedAmount }
func (m *Member401k) MaxMatch() int          { return m.maxMatch }
func (m *Member401k) ActualMatch() int       { return m.actualMatch }

// MonthlyPay is the role's monthly pay from the currently stored fields.
func (m *Member401k) MonthlyPay() int {
	if m.role == RoleSupervisor {
		return m.salary / monthsPerYear
	}
	return m.WeeklyPay() * weeksPerMonth
}

// SetAccountNumber stores a ten character account number as XXX-XXXXXXX,
// or DefaultAccountNumber.
func (m *Member401k) SetAccountNumber(raw any) bool {
	var defaulted bool
	m.accountNumber, defaulted = ValidAccountNumber(raw)
	return defaulted
}

// SetContributedAmount stores an amount in [0, 5000], or 0, and caps the
// actual match at maxMatch.
func (m *Member401k) SetContributedAmount(raw any) bool {
	var defaulted bool
	m.contributedAmount, defaulted = ValidContribution(raw)
	m.actualMatch = min(m.contributedAmount, m.maxMatch)
	return defaulted
}

// RecalculateMatch re-derives maxMatch and actualMatch from the stored
// salary or rate and hours.
func (m *Member401k) RecalculateMatch() {
	m.maxMatch = matchFor(m.MonthlyPay())
	m.actualMatch = min(m.contributedAmount, m.maxMatch)
}

func matchFor(monthlyPay int) int {
	return int(decimal.NewFromInt(int64(monthlyPay)).Mul(MatchRate).Floor().IntPart())
}
