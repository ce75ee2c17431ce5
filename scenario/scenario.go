/*
Package scenario loads demo populations of workers, supervisors and 401k
members into a registry.

PURPOSE:
  Provides pre-built scenarios for demos and manual testing, and lets
  operators describe their own in YAML. Each scenario creates entities
  from raw field bags, then replays roster assignments, contribution
  changes and bonus grants in file order.

AVAILABLE SCENARIOS (builtin/*.yaml):
  demo-members:     Two worker-role and two supervisor-role members,
                    then contributions raised to 1000 for two of them
  full-roster:      Capacity-3 night supervisor offered five workers
  supervisor-bonus: Six rostered workers push a supervisor over the
                    bonus threshold

FILE FORMAT:
  id: my-scenario
  name: My Scenario
  workers:
    - {key: w1, name: Lee Park, number: 301, shift: NIGHT, rate: 15, hours: 40}
  supervisors:
    - {key: lead, name: Dana Ortiz, shift: NIGHT, salary: 82000, capacity: 3}
  members:
    - {key: m1, name: Marco Joseph, rate: 13, hours: 35, contributedAmount: 72}
  assignments:
    - {supervisor: lead, worker: w1}
  contributions:
    - {member: m1, amount: 1000}
  bonuses: [lead]

  Every entity key except "key" is passed to the payroll constructors
  unchanged, so invalid values are sanitized exactly as they would be
  through the API.

ADDING NEW SCENARIOS:
  Drop a YAML file into builtin/. It is embedded at build time.
*/
package scenario

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/warp/compensation-engine/payroll"
	"github.com/warp/compensation-engine/registry"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrUnknownScenario is returned when a scenario ID is not registered.
var ErrUnknownScenario = errors.New("unknown scenario")

// =============================================================================
// TYPES
// =============================================================================

// Scenario is a named population plus the operations to replay on it.
type Scenario struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	Category      string         `yaml:"category"`
	Workers       []Entry        `yaml:"workers"`
	Supervisors   []Entry        `yaml:"supervisors"`
	Members       []Entry        `yaml:"members"`
	Assignments   []Assignment   `yaml:"assignments"`
	Contributions []Contribution `yaml:"contributions"`
	Bonuses       []string       `yaml:"bonuses"`
}

// Entry is one entity: a reference key plus its raw field bag.
type Entry struct {
	Key    string         `yaml:"key"`
	Values map[string]any `yaml:",inline"`
}

// Fields converts the raw values into a payroll field bag.
func (e Entry) Fields() payroll.Fields {
	f := make(payroll.Fields, len(e.Values))
	for k, v := range e.Values {
		f[payroll.Field(k)] = v
	}
	return f
}

type Assignment struct {
	Supervisor string `yaml:"supervisor"`
	Worker     string `yaml:"worker"`
}

type Contribution struct {
	Member string `yaml:"member"`
	Amount any    `yaml:"amount"`
}

// =============================================================================
// LOADING
// =============================================================================

// Parse decodes a YAML scenario and checks that every key it references
// is defined.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: parse yaml: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(p string) (*Scenario, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("scenario: read file %s: %w", p, err)
	}
	return Parse(b)
}

func (s *Scenario) validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario: id must be set")
	}
	keys := make(map[string]registry.Kind)
	add := func(kind registry.Kind, entries []Entry) error {
		for i, e := range entries {
			if e.Key == "" {
				return fmt.Errorf("scenario %s: %s #%d: key must be set", s.ID, kind, i)
			}
			if _, dup := keys[e.Key]; dup {
				return fmt.Errorf("scenario %s: duplicate key %q", s.ID, e.Key)
			}
			keys[e.Key] = kind
		}
		return nil
	}
	if err := add(registry.KindWorker, s.Workers); err != nil {
		return err
	}
	if err := add(registry.KindSupervisor, s.Supervisors); err != nil {
		return err
	}
	if err := add(registry.KindMember, s.Members); err != nil {
		return err
	}
	// a member owns a roster only in the supervisor role
	owners := make(map[string]bool)
	for _, e := range s.Supervisors {
		owners[e.Key] = true
	}
	for _, e := range s.Members {
		owners[e.Key] = payroll.ResolveRole(e.Fields()) == payroll.RoleSupervisor
	}

	for _, a := range s.Assignments {
		if !owners[a.Supervisor] {
			return fmt.Errorf("scenario %s: assignment supervisor %q is not a supervisor or supervisor-role member", s.ID, a.Supervisor)
		}
		if keys[a.Worker] != registry.KindWorker {
			return fmt.Errorf("scenario %s: assignment worker %q is not a worker", s.ID, a.Worker)
		}
	}
	for _, c := range s.Contributions {
		if keys[c.Member] != registry.KindMember {
			return fmt.Errorf("scenario %s: contribution member %q is not a member", s.ID, c.Member)
		}
	}
	for _, b := range s.Bonuses {
		if !owners[b] {
			return fmt.Errorf("scenario %s: bonus target %q is not a supervisor or supervisor-role member", s.ID, b)
		}
	}
	return nil
}

// =============================================================================
// BUILTIN SCENARIOS
// =============================================================================

var builtins = mustLoadBuiltins()

func mustLoadBuiltins() map[string]*Scenario {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		panic(err)
	}
	out := make(map[string]*Scenario, len(entries))
	for _, e := range entries {
		b, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			panic(err)
		}
		s, err := Parse(b)
		if err != nil {
			panic(fmt.Sprintf("builtin %s: %v", e.Name(), err))
		}
		out[s.ID] = s
	}
	return out
}

// Builtin returns the embedded scenarios sorted by ID.
func Builtin() []*Scenario {
	out := make([]*Scenario, 0, len(builtins))
	for _, s := range builtins {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a builtin scenario by ID.
func Get(id string) (*Scenario, error) {
	s, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, id)
	}
	return s, nil
}

// =============================================================================
// APPLY
// =============================================================================

// Result maps scenario keys to registry IDs and records what each replayed
// operation did.
type Result struct {
	IDs         map[string]string
	Assignments []AssignmentOutcome
	Bonuses     []BonusOutcome
}

// AssignmentOutcome is the result of one roster assignment. Err is set
// for a full roster; Added=false with no Err means a shift mismatch.
type AssignmentOutcome struct {
	Supervisor string
	Worker     string
	Added      bool
	Err        error
}

type BonusOutcome struct {
	Supervisor string
	Granted    bool
	Salary     int
}

// Apply creates the scenario's entities in reg and replays its operations.
// A full roster is recorded in the result, not returned as an error.
func (s *Scenario) Apply(reg *registry.Memory) (*Result, error) {
	res := &Result{IDs: make(map[string]string)}
	for _, e := range s.Workers {
		res.IDs[e.Key] = reg.AddWorker(e.Fields())
	}
	for _, e := range s.Supervisors {
		res.IDs[e.Key] = reg.AddSupervisor(e.Fields())
	}
	for _, e := range s.Members {
		res.IDs[e.Key] = reg.AddMember(e.Fields())
	}

	for _, a := range s.Assignments {
		added, err := reg.AssignWorker(res.IDs[a.Supervisor], res.IDs[a.Worker])
		if err != nil && !errors.Is(err, payroll.ErrRosterFull) {
			return nil, fmt.Errorf("scenario %s: assign %s to %s: %w", s.ID, a.Worker, a.Supervisor, err)
		}
		res.Assignments = append(res.Assignments, AssignmentOutcome{
			Supervisor: a.Supervisor, Worker: a.Worker, Added: added, Err: err,
		})
	}

	for _, c := range s.Contributions {
		err := reg.UpdateMember(res.IDs[c.Member], func(m *payroll.Member401k) error {
			m.SetContributedAmount(c.Amount)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scenario %s: contribution for %s: %w", s.ID, c.Member, err)
		}
	}

	for _, b := range s.Bonuses {
		granted, salary, err := reg.GrantBonus(res.IDs[b])
		if err != nil {
			return nil, fmt.Errorf("scenario %s: bonus for %s: %w", s.ID, b, err)
		}
		res.Bonuses = append(res.Bonuses, BonusOutcome{Supervisor: b, Granted: granted, Salary: salary})
	}
	return res, nil
}
