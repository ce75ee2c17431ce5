// Package registry keeps compensation entities in memory for the lifetime
// of a process and serializes access to them.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/warp/compensation-engine/payroll"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no entity has the requested ID.
	ErrNotFound = errors.New("entity not found")

	// ErrNotRosterOwner is returned when workers are assigned to an entity
	// that does not supervise a roster (a worker-role member).
	ErrNotRosterOwner = errors.New("entity does not supervise a roster")
)

// NotFoundError names the kind and ID that was looked up.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Kind tells which collection an ID belongs to.
type Kind string

const (
	KindWorker     Kind = "worker"
	KindSupervisor Kind = "supervisor"
	KindMember     Kind = "member"
)

// =============================================================================
// MEMORY - Mutex-guarded directory
// =============================================================================

// Memory holds workers, supervisors and 401k members by ID. The payroll
// types are not safe for concurrent use, so every access goes through a
// callback run under the registry lock; entities must not escape it.
type Memory struct {
	mu          sync.RWMutex
	workers     map[string]*payroll.ProductionWorker
	supervisors map[string]*payroll.ShiftSupervisor
	members     map[string]*payroll.Member401k
	order       map[Kind][]string
}

func NewMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.workers = make(map[string]*payroll.ProductionWorker)
	m.supervisors = make(map[string]*payroll.ShiftSupervisor)
	m.members = make(map[string]*payroll.Member401k)
	m.order = make(map[Kind][]string)
}

// Reset removes every entity.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// =============================================================================
// CREATE
// =============================================================================

// AddWorker builds a worker from f and returns its new ID.
func (m *Memory) AddWorker(f payroll.Fields) string {
	w := payroll.NewProductionWorker(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID(KindWorker)
	m.workers[id] = w
	return id
}

// AddSupervisor builds a supervisor from f and returns its new ID.
func (m *Memory) AddSupervisor(f payroll.Fields) string {
	s := payroll.NewShiftSupervisor(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID(KindSupervisor)
	m.supervisors[id] = s
	return id
}

// AddMember builds a 401k member from f and returns its new ID.
func (m *Memory) AddMember(f payroll.Fields) string {
	mem := payroll.NewMember401k(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID(KindMember)
	m.members[id] = mem
	return id
}

func (m *Memory) nextID(kind Kind) string {
	id := uuid.NewString()
	m.order[kind] = append(m.order[kind], id)
	return id
}

// =============================================================================
// READ
// =============================================================================

// IDs returns the IDs of one kind in creation order.
func (m *Memory) IDs(kind Kind) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order[kind]))
	copy(out, m.order[kind])
	return out
}

// ReadWorker runs fn with the worker under a read lock.
func (m *Memory) ReadWorker(id string, fn func(*payroll.ProductionWorker) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.workers[id]
	if !ok {
		return &NotFoundError{Kind: KindWorker, ID: id}
	}
	return fn(w)
}

// ReadSupervisor runs fn with the supervisor under a read lock.
func (m *Memory) ReadSupervisor(id string, fn func(*payroll.ShiftSupervisor) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.supervisors[id]
	if !ok {
		return &NotFoundError{Kind: KindSupervisor, ID: id}
	}
	return fn(s)
}

// ReadMember runs fn with the member under a read lock.
func (m *Memory) ReadMember(id string, fn func(*payroll.Member401k) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mem, ok := m.members[id]
	if !ok {
		return &NotFoundError{Kind: KindMember, ID: id}
	}
	return fn(mem)
}

// =============================================================================
// MUTATE
// =============================================================================

// UpdateMember runs fn with the member under the write lock.
func (m *Memory) UpdateMember(id string, fn func(*payroll.Member401k) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.members[id]
	if !ok {
		return &NotFoundError{Kind: KindMember, ID: id}
	}
	return fn(mem)
}

// UpdateWorker runs fn with the worker under the write lock.
func (m *Memory) UpdateWorker(id string, fn func(*payroll.ProductionWorker) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workers[id]
	if !ok {
		return &NotFoundError{Kind: KindWorker, ID: id}
	}
	return fn(w)
}

// rosterOwner is satisfied by *payroll.ShiftSupervisor and, through
// embedding, *payroll.Member401k.
type rosterOwner interface {
	AddWorker(w *payroll.ProductionWorker) (bool, error)
	GrantBonusIfEligible() bool
	Salary() int
}

func (m *Memory) ownerLocked(id string) (rosterOwner, error) {
	if s, ok := m.supervisors[id]; ok {
		return s, nil
	}
	if mem, ok := m.members[id]; ok {
		if !mem.IsSupervisorRole() {
			return nil, fmt.Errorf("member %s: %w", id, ErrNotRosterOwner)
		}
		return mem, nil
	}
	return nil, &NotFoundError{Kind: KindSupervisor, ID: id}
}

// AssignWorker adds a registered worker to the roster of a supervisor or
// supervisor-role member. A shift mismatch returns (false, nil); a full
// roster returns an error wrapping payroll.ErrRosterFull.
func (m *Memory) AssignWorker(supervisorID, workerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, err := m.ownerLocked(supervisorID)
	if err != nil {
		return false, err
	}
	w, ok := m.workers[workerID]
	if !ok {
		return false, &NotFoundError{Kind: KindWorker, ID: workerID}
	}
	return owner.AddWorker(w)
}

// GrantBonus applies the supervisor bonus rule and returns the resulting
// salary.
func (m *Memory) GrantBonus(supervisorID string) (bool, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, err := m.ownerLocked(supervisorID)
	if err != nil {
		return false, 0, err
	}
	granted := owner.GrantBonusIfEligible()
	return granted, owner.Salary(), nil
}
