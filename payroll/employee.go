package payroll

// =============================================================================
// EMPLOYEE - Base identity shared by every role
// =============================================================================

// Employee holds identity and the derived benefits flag.
// hasBenefits is never set directly; SetNumber recomputes it.
type Employee struct {
	name        string
	number      int
	hasBenefits bool

	// construction-time fields whose supplied value was replaced
	defaulted []Field
}

// NewEmployee builds an Employee from the name and number fields of f.
func NewEmployee(f Fields) *Employee {
	e := &Employee{}
	e.init(f)
	return e
}

func (e *Employee) init(f Fields) {
	e.track(f, FieldName, e.SetName(f.Get(FieldName)))
	e.track(f, FieldNumber, e.SetNumber(f.Get(FieldNumber)))
}

func (e *Employee) Name() string      { return e.name }
func (e *Employee) Number() int       { return e.number }
func (e *Employee) HasBenefits() bool { return e.hasBenefits }

// SetName stores raw if it is a non-numeric string, otherwise DefaultName.
// It reports whether the default was used.
func (e *Employee) SetName(raw any) bool {
	var defaulted bool
	e.name, defaulted = ValidName(raw)
	return defaulted
}

// SetNumber stores raw if it is in [100, 999], otherwise DefaultNumber, and
// recomputes benefit eligibility from the stored number. An invalid number
// therefore never grants benefits.
func (e *Employee) SetNumber(raw any) bool {
	var defaulted bool
	e.number, defaulted = ValidNumber(raw)
	e.hasBenefits = e.number < BenefitCutoff
	return defaulted
}

// DefaultedFields lists the supplied construction fields that were invalid
// and replaced by their default. Absent fields are not listed.
func (e *Employee) DefaultedFields() []Field {
	out := make([]Field, len(e.defaulted))
	copy(out, e.defaulted)
	return out
}

func (e *Employee) track(f Fields, key Field, defaulted bool) {
	if defaulted && f.Has(key) {
		e.defaulted = append(e.defaulted, key)
	}
}

// =============================================================================
// SHIFT ASSIGNMENT - Embedded by workers and supervisors
// =============================================================================

// ShiftAssignment is the validated shift of a worker or supervisor.
type ShiftAssignment struct {
	shift Shift
}

func (a *ShiftAssignment) init(f Fields, e *Employee) {
	e.track(f, FieldShift, a.SetShift(f.Get(FieldShift)))
}

func (a *ShiftAssignment) Shift() Shift { return a.shift }

// SetShift stores a valid shift or DefaultShift.
func (a *ShiftAssignment) SetShift(raw any) bool {
	var defaulted bool
	a.shift, defaulted = ValidShift(raw)
	return defaulted
}
