/*
Package payroll provides the in-memory compensation model.

PURPOSE:
  Represents employees, their pay computation and their eligibility for
  a 401k retirement-savings match. Every mutable attribute is validated
  on write and silently replaced by a documented default when invalid.

KEY CONCEPTS IN THIS FILE (types.go):
  - Shift:  DAY, SWING or NIGHT assignment shared by workers and supervisors
  - Role:   Which pay formula a Member401k uses (supervisor or worker)
  - Field:  Logical attribute names used in construction field bags
  - Fields: The field bag itself (absent key = "not supplied")

ENTITY HIERARCHY:
  Employee            name, number, derived benefits flag
  ProductionWorker    Employee + shift, hourly rate, hours worked
  ShiftSupervisor     Employee + shift, salary, bounded roster of workers
  Member401k          both field sets + role tag + account and match figures

VALIDATION POLICY:
  Sanitize, never reject. Bad input (wrong type, out of range) is stored
  as the field's default; no error escapes a setter. The only error the
  package reports is a full roster (see errors.go).

SEE ALSO:
  - validate.go:   Pure per-field validators
  - member.go:     Role resolution and match derivation
  - supervisor.go: Roster capacity and bonus rules
*/
package payroll

import (
	"fmt"
	"strings"
)

// =============================================================================
// SHIFT
// =============================================================================

// Shift is the work shift an employee is assigned to.
type Shift int

const (
	ShiftDay   Shift = 1
	ShiftSwing Shift = 2
	ShiftNight Shift = 3
)

// DefaultShift is stored whenever a shift input is invalid.
const DefaultShift = ShiftDay

func (s Shift) IsValid() bool {
	switch s {
	case ShiftDay, ShiftSwing, ShiftNight:
		return true
	}
	return false
}

func (s Shift) String() string {
	switch s {
	case ShiftDay:
		return "DAY"
	case ShiftSwing:
		return "SWING"
	case ShiftNight:
		return "NIGHT"
	}
	return fmt.Sprintf("Shift(%d)", int(s))
}

func parseShiftName(name string) (Shift, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DAY":
		return ShiftDay, true
	case "SWING":
		return ShiftSwing, true
	case "NIGHT":
		return ShiftNight, true
	}
	return 0, false
}

// =============================================================================
// ROLE
// =============================================================================

// Role selects the monthly-pay formula of a Member401k.
type Role string

const (
	RoleWorker     Role = "worker"
	RoleSupervisor Role = "supervisor"
)

// =============================================================================
// FIELD BAG
// =============================================================================

// Field is the logical name of a construction attribute.
type Field string

const (
	FieldName              Field = "name"
	FieldNumber            Field = "number"
	FieldShift             Field = "shift"
	FieldRate              Field = "rate"
	FieldHours             Field = "hours"
	FieldSalary            Field = "salary"
	FieldCapacity          Field = "capacity"
	FieldWorkerCount       Field = "workerCount"
	FieldAccountNumber     Field = "accountNumber"
	FieldContributedAmount Field = "contributedAmount"
)

// Fields is a construction request. Values are raw: each entity validates
// the keys it owns and ignores the rest. A missing key means the field was
// not supplied, which matters for Member401k role resolution.
type Fields map[Field]any

// Has reports whether the field was supplied, even with a nil value.
func (f Fields) Has(key Field) bool {
	_, ok := f[key]
	return ok
}

// Get returns the raw value, or nil when absent.
func (f Fields) Get(key Field) any {
	if f == nil {
		return nil
	}
	return f[key]
}
