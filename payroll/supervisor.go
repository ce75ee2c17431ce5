package payroll

// =============================================================================
// SUPERVISION - Salary and roster, shared by ShiftSupervisor and Member401k
// =============================================================================

// Supervision is the salaried part of a supervisor: annual salary and a
// bounded roster of workers. Capacity is fixed at construction.
type Supervision struct {
	salary      int
	capacity    int
	workerCount int
	roster      []*ProductionWorker
}

func (s *Supervision) init(f Fields, e *Employee) {
	e.track(f, FieldSalary, s.SetSalary(f.Get(FieldSalary)))

	var defaulted bool
	s.capacity, defaulted = ValidCapacity(f.Get(FieldCapacity))
	e.track(f, FieldCapacity, defaulted)

	// A seeded count stands for subordinates not tracked in the roster.
	s.workerCount, defaulted = ValidWorkerCount(f.Get(FieldWorkerCount), s.capacity)
	e.track(f, FieldWorkerCount, defaulted)
}

func (s *Supervision) Salary() int      { return s.salary }
func (s *Supervision) Capacity() int    { return s.capacity }
func (s *Supervision) WorkerCount() int { return s.workerCount }

// Roster returns the added workers in insertion order.
func (s *Supervision) Roster() []*ProductionWorker {
	out := make([]*ProductionWorker, len(s.roster))
	copy(out, s.roster)
	return out
}

// SetSalary stores a salary in [50000, 200000] or DefaultSalary.
func (s *Supervision) SetSalary(raw any) bool {
	var defaulted bool
	s.salary, defaulted = ValidSalary(raw)
	return defaulted
}

// GrantBonusIfEligible adds BonusAmount to the salary when more than
// BonusWorkerCutoff workers are supervised. Every eligible call adds the
// bonus again. The raised salary is not re-validated against MaxSalary.
func (s *Supervision) GrantBonusIfEligible() bool {
	if s.workerCount <= BonusWorkerCutoff {
		return false
	}
	s.salary += BonusAmount
	return true
}

func (s *Supervision) add(shift Shift, name string, w *ProductionWorker) (bool, error) {
	if w == nil || w.Shift() != shift {
		return false, nil
	}
	if s.workerCount >= s.capacity {
		return false, &RosterFullError{
			Supervisor:  name,
			Capacity:    s.capacity,
			WorkerCount: s.workerCount,
		}
	}
	s.roster = append(s.roster, w)
	s.workerCount++
	return true, nil
}

// =============================================================================
// SHIFT SUPERVISOR
// =============================================================================

// ShiftSupervisor is a salaried employee responsible for the workers of one
// shift. Roster entries are shared references; the supervisor does not own
// the workers.
type ShiftSupervisor struct {
	Employee
	ShiftAssignment
	Supervision
}

// NewShiftSupervisor builds a supervisor from the name, number, shift,
// salary, capacity and workerCount fields of f.
func NewShiftSupervisor(f Fields) *ShiftSupervisor {
	s := &ShiftSupervisor{}
	s.Employee.init(f)
	s.ShiftAssignment.init(f, &s.Employee)
	s.Supervision.init(f, &s.Employee)
	return s
}

// AddWorker appends w to the roster. A worker on another shift is ignored
// (false, nil). At capacity it returns a *RosterFullError.
func (s *ShiftSupervisor) AddWorker(w *ProductionWorker) (bool, error) {
	return s.Supervision.add(s.Shift(), s.Name(), w)
}
