package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compensation-engine/payroll"
	"github.com/warp/compensation-engine/registry"
	"github.com/warp/compensation-engine/scenario"
)

func TestBuiltin_AllParse(t *testing.T) {
	var ids []string
	for _, s := range scenario.Builtin() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"demo-members", "full-roster", "supervisor-bonus"}, ids)
}

func TestGet_Unknown(t *testing.T) {
	_, err := scenario.Get("nope")
	assert.ErrorIs(t, err, scenario.ErrUnknownScenario)
}

func TestDemoMembers_Apply(t *testing.T) {
	// GIVEN: The demo members scenario
	// WHEN: Applied to an empty registry
	// THEN: Marco's contribution of 1000 is capped at his max match of 91,
	//       Helena's at 298, and the supervisors resolve to supervisor role

	s, err := scenario.Get("demo-members")
	require.NoError(t, err)
	reg := registry.NewMemory()

	res, err := s.Apply(reg)
	require.NoError(t, err)
	require.Len(t, res.IDs, 4)

	require.NoError(t, reg.ReadMember(res.IDs["marco"], func(m *payroll.Member401k) error {
		assert.Equal(t, payroll.RoleWorker, m.Role())
		assert.Equal(t, 1000, m.ContributedAmount())
		assert.Equal(t, 91, m.ActualMatch())
		assert.Equal(t, payroll.DefaultAccountNumber, m.AccountNumber())
		return nil
	}))
	require.NoError(t, reg.ReadMember(res.IDs["helena"], func(m *payroll.Member401k) error {
		assert.True(t, m.IsSupervisorRole())
		assert.Equal(t, 298, m.ActualMatch())
		return nil
	}))
	require.NoError(t, reg.ReadMember(res.IDs["angela"], func(m *payroll.Member401k) error {
		// 11*21 = 231, *4 = 924, *0.05 = 46.2
		assert.Equal(t, payroll.ShiftSwing, m.Shift())
		assert.Equal(t, 46, m.MaxMatch())
		assert.Equal(t, 46, m.ActualMatch())
		return nil
	}))
}

func TestFullRoster_Apply(t *testing.T) {
	s, err := scenario.Get("full-roster")
	require.NoError(t, err)

	res, err := s.Apply(registry.NewMemory())
	require.NoError(t, err)

	require.Len(t, res.Assignments, 5)
	added := map[string]bool{}
	for _, a := range res.Assignments {
		added[a.Worker] = a.Added
	}
	assert.Equal(t, map[string]bool{"n1": true, "n2": true, "d1": false, "n3": true, "n4": false}, added)
	assert.NoError(t, res.Assignments[2].Err, "shift mismatch is not an error")
	assert.ErrorIs(t, res.Assignments[4].Err, payroll.ErrRosterFull)
}

func TestSupervisorBonus_Apply(t *testing.T) {
	s, err := scenario.Get("supervisor-bonus")
	require.NoError(t, err)

	res, err := s.Apply(registry.NewMemory())
	require.NoError(t, err)

	require.Len(t, res.Bonuses, 1)
	assert.True(t, res.Bonuses[0].Granted)
	assert.Equal(t, 74000, res.Bonuses[0].Salary)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":                         "id: [",
		"missing id":                       "name: x",
		"missing key":                      "id: x\nworkers:\n  - {name: a}",
		"duplicate key":                    "id: x\nworkers:\n  - {key: a}\n  - {key: a}",
		"bad assignment":                   "id: x\nworkers:\n  - {key: a}\nassignments:\n  - {supervisor: a, worker: a}",
		"bad contrib":                      "id: x\nworkers:\n  - {key: a}\ncontributions:\n  - {member: a, amount: 5}",
		"bad bonus":                        "id: x\nbonuses: [ghost]",
		"worker-role member as supervisor": "id: x\nworkers:\n  - {key: w}\nmembers:\n  - {key: m, salary: 60000, rate: 13}\nassignments:\n  - {supervisor: m, worker: w}",
		"worker-role member bonus":         "id: x\nmembers:\n  - {key: m, hours: 40}\nbonuses: [m]",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_SupervisorRoleMemberOwnsRoster(t *testing.T) {
	// GIVEN: A member with salary and hours but no rate
	doc := `
id: member-lead
workers:
  - {key: w, shift: DAY}
members:
  - {key: m, shift: DAY, salary: 60000, hours: 40}
assignments:
  - {supervisor: m, worker: w}
`
	// WHEN: Parsing and applying
	s, err := scenario.Parse([]byte(doc))
	require.NoError(t, err)
	res, err := s.Apply(registry.NewMemory())

	// THEN: The member runs the roster
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	assert.True(t, res.Assignments[0].Added)
}

func TestLoadFile_SanitizesValues(t *testing.T) {
	doc := `
id: custom
members:
  - key: m
    name: "12345"
    number: 42
    shift: EVENING
    rate: 13
    hours: 35
    accountNumber: ABCDEFGHIJ
    contributedAmount: 9000
`
	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte(doc), 0o600))

	s, err := scenario.LoadFile(p)
	require.NoError(t, err)
	reg := registry.NewMemory()
	res, err := s.Apply(reg)
	require.NoError(t, err)

	require.NoError(t, reg.ReadMember(res.IDs["m"], func(m *payroll.Member401k) error {
		assert.Equal(t, payroll.DefaultName, m.Name())
		assert.Equal(t, payroll.DefaultNumber, m.Number())
		assert.Equal(t, payroll.ShiftDay, m.Shift())
		assert.Equal(t, "ABC-DEFGHIJ", m.AccountNumber())
		assert.Equal(t, 0, m.ContributedAmount())
		assert.ElementsMatch(t, []payroll.Field{
			payroll.FieldName, payroll.FieldNumber, payroll.FieldShift, payroll.FieldContributedAmount,
		}, m.DefaultedFields())
		return nil
	}))

	_, err = scenario.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
