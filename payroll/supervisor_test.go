package payroll_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compensation-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func nightSupervisor(capacity int) *payroll.ShiftSupervisor {
	return payroll.NewShiftSupervisor(payroll.Fields{
		payroll.FieldName:     "Zach Mccall",
		payroll.FieldNumber:   456,
		payroll.FieldShift:    payroll.ShiftNight,
		payroll.FieldSalary:   51680,
		payroll.FieldCapacity: capacity,
	})
}

func worker(name string, shift payroll.Shift) *payroll.ProductionWorker {
	return payroll.NewProductionWorker(payroll.Fields{
		payroll.FieldName:  name,
		payroll.FieldShift: shift,
		payroll.FieldRate:  12,
		payroll.FieldHours: 40,
	})
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewShiftSupervisor(t *testing.T) {
	s := nightSupervisor(3)

	assert.Equal(t, "Zach Mccall", s.Name())
	assert.True(t, s.HasBenefits())
	assert.Equal(t, payroll.ShiftNight, s.Shift())
	assert.Equal(t, 51680, s.Salary())
	assert.Equal(t, 3, s.Capacity())
	assert.Equal(t, 0, s.WorkerCount())
	assert.Empty(t, s.Roster())
}

func TestNewShiftSupervisor_Defaults(t *testing.T) {
	s := payroll.NewShiftSupervisor(payroll.Fields{
		payroll.FieldSalary:      250000,
		payroll.FieldCapacity:    0,
		payroll.FieldWorkerCount: -3,
	})

	assert.Equal(t, payroll.DefaultSalary, s.Salary())
	assert.Equal(t, payroll.DefaultCapacity, s.Capacity())
	assert.Equal(t, 0, s.WorkerCount())
	assert.ElementsMatch(t,
		[]payroll.Field{payroll.FieldSalary, payroll.FieldCapacity, payroll.FieldWorkerCount},
		s.DefaultedFields())
}

func TestNewShiftSupervisor_WorkerCountBoundedByCapacity(t *testing.T) {
	s := payroll.NewShiftSupervisor(payroll.Fields{
		payroll.FieldCapacity:    4,
		payroll.FieldWorkerCount: 5,
	})
	assert.Equal(t, 0, s.WorkerCount())

	s = payroll.NewShiftSupervisor(payroll.Fields{
		payroll.FieldCapacity:    4,
		payroll.FieldWorkerCount: 4,
	})
	assert.Equal(t, 4, s.WorkerCount())
}

// =============================================================================
// ROSTER
// =============================================================================

func TestAddWorker_FillsInOrderUntilFull(t *testing.T) {
	// GIVEN: A night supervisor with capacity 3
	// WHEN: Adding 4 night workers
	// THEN: First 3 are added in order, the 4th reports roster full

	s := nightSupervisor(3)
	var added []*payroll.ProductionWorker
	for i := 0; i < 3; i++ {
		w := worker(fmt.Sprintf("worker-%d", i), payroll.ShiftNight)
		ok, err := s.AddWorker(w)
		require.NoError(t, err)
		require.True(t, ok)
		added = append(added, w)
	}

	ok, err := s.AddWorker(worker("one-too-many", payroll.ShiftNight))

	assert.False(t, ok)
	assert.ErrorIs(t, err, payroll.ErrRosterFull)
	var fullErr *payroll.RosterFullError
	require.ErrorAs(t, err, &fullErr)
	assert.Equal(t, 3, fullErr.Capacity)
	assert.Equal(t, "Zach Mccall", fullErr.Supervisor)
	assert.Equal(t, 3, s.WorkerCount())
	assert.Equal(t, added, s.Roster())
}

func TestAddWorker_ShiftMismatchIsSilentNoOp(t *testing.T) {
	s := nightSupervisor(1)

	ok, err := s.AddWorker(worker("day-worker", payroll.ShiftDay))

	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 0, s.WorkerCount())
	assert.Empty(t, s.Roster())
}

func TestAddWorker_ShiftMismatchAtCapacityIsStillNoOp(t *testing.T) {
	// Shift is checked before capacity: a mismatched worker never sees
	// the roster-full error.
	s := nightSupervisor(1)
	_, err := s.AddWorker(worker("night-worker", payroll.ShiftNight))
	require.NoError(t, err)

	ok, err := s.AddWorker(worker("swing-worker", payroll.ShiftSwing))

	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestAddWorker_NilWorker(t *testing.T) {
	s := nightSupervisor(1)
	ok, err := s.AddWorker(nil)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestAddWorker_SeededCountCountsTowardCapacity(t *testing.T) {
	s := payroll.NewShiftSupervisor(payroll.Fields{
		payroll.FieldCapacity:    2,
		payroll.FieldWorkerCount: 1,
	})

	ok, err := s.AddWorker(worker("w1", payroll.ShiftDay))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.AddWorker(worker("w2", payroll.ShiftDay))
	assert.True(t, errors.Is(err, payroll.ErrRosterFull))
	assert.Equal(t, 2, s.WorkerCount())
	assert.Len(t, s.Roster(), 1)
}

func TestRoster_ReturnsCopy(t *testing.T) {
	s := nightSupervisor(2)
	_, err := s.AddWorker(worker("w1", payroll.ShiftNight))
	require.NoError(t, err)

	r := s.Roster()
	r[0] = nil

	assert.NotNil(t, s.Roster()[0])
}

func TestRoster_SharesWorkerReferences(t *testing.T) {
	s := nightSupervisor(2)
	w := worker("shared", payroll.ShiftNight)
	_, err := s.AddWorker(w)
	require.NoError(t, err)

	w.SetHoursWorked(10)

	assert.Equal(t, 10, s.Roster()[0].HoursWorked())
}

// =============================================================================
// BONUS
// =============================================================================

func supervisorWithWorkers(t *testing.T, n int) *payroll.ShiftSupervisor {
	t.Helper()
	s := payroll.NewShiftSupervisor(payroll.Fields{payroll.FieldSalary: 60000})
	for i := 0; i < n; i++ {
		_, err := s.AddWorker(worker(fmt.Sprintf("w%d", i), payroll.ShiftDay))
		require.NoError(t, err)
	}
	require.Equal(t, n, s.WorkerCount())
	return s
}

func TestGrantBonus_FiveWorkersNotEligible(t *testing.T) {
	s := supervisorWithWorkers(t, 5)

	assert.False(t, s.GrantBonusIfEligible())
	assert.Equal(t, 60000, s.Salary())
}

func TestGrantBonus_SixWorkersReappliedEachCall(t *testing.T) {
	// GIVEN: A supervisor with 6 workers
	// WHEN: Granting the bonus twice
	// THEN: Each call adds 10000; the bonus is not idempotent

	s := supervisorWithWorkers(t, 6)

	assert.True(t, s.GrantBonusIfEligible())
	assert.Equal(t, 70000, s.Salary())

	assert.True(t, s.GrantBonusIfEligible())
	assert.Equal(t, 80000, s.Salary())
}

func TestGrantBonus_MayExceedMaxSalary(t *testing.T) {
	s := payroll.NewShiftSupervisor(payroll.Fields{
		payroll.FieldSalary:      200000,
		payroll.FieldWorkerCount: 6,
	})

	assert.True(t, s.GrantBonusIfEligible())
	assert.Equal(t, 210000, s.Salary())
}
