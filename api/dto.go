/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Entities are never
  serialized directly: each DTO is filled from the payroll query accessors
  while the registry lock is held.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

FIELD BAGS:
  Create and update endpoints do not use typed request structs. The body
  is a JSON object keyed by payroll field name (name, number, shift, rate,
  hours, salary, capacity, workerCount, accountNumber, contributedAmount)
  decoded with UseNumber, so bad values reach the payroll validators and
  are sanitized instead of failing JSON decoding.

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/types.go: Field names
*/
package api

import (
	"github.com/warp/compensation-engine/payroll"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// WorkerDTO represents a production worker.
type WorkerDTO struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Number          int      `json:"number"`
	HasBenefits     bool     `json:"has_benefits"`
	Shift           string   `json:"shift"`
	HourlyRate      int      `json:"hourly_rate"`
	HoursWorked     int      `json:"hours_worked"`
	GrossPay        int      `json:"gross_pay"`
	DefaultedFields []string `json:"defaulted_fields,omitempty"`
}

// SupervisorDTO represents a shift supervisor and its roster.
type SupervisorDTO struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Number          int         `json:"number"`
	HasBenefits     bool        `json:"has_benefits"`
	Shift           string      `json:"shift"`
	Salary          int         `json:"salary"`
	Capacity        int         `json:"capacity"`
	WorkerCount     int         `json:"worker_count"`
	Roster          []WorkerDTO `json:"roster"`
	DefaultedFields []string    `json:"defaulted_fields,omitempty"`
}

// MemberDTO represents a 401k member. Both field sets are always present;
// Role tells which one sized the match.
type MemberDTO struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Number            int         `json:"number"`
	HasBenefits       bool        `json:"has_benefits"`
	Shift             string      `json:"shift"`
	Role              string      `json:"role"`
	HourlyRate        int         `json:"hourly_rate"`
	HoursWorked       int         `json:"hours_worked"`
	GrossPay          int         `json:"gross_pay"`
	Salary            int         `json:"salary"`
	Capacity          int         `json:"capacity"`
	WorkerCount       int         `json:"worker_count"`
	Roster            []WorkerDTO `json:"roster"`
	AccountNumber     string      `json:"account_number"`
	ContributedAmount int         `json:"contributed_amount"`
	MonthlyPay        int         `json:"monthly_pay"`
	MaxMatch          int         `json:"max_match"`
	ActualMatch       int         `json:"actual_match"`
	DefaultedFields   []string    `json:"defaulted_fields,omitempty"`
}

// AssignWorkerRequest assigns a registered worker to a roster.
type AssignWorkerRequest struct {
	WorkerID string `json:"worker_id"`
}

// AssignWorkerDTO is the outcome of a roster assignment. Added is false
// with status 200 when the shifts differ.
type AssignWorkerDTO struct {
	SupervisorID string `json:"supervisor_id"`
	WorkerID     string `json:"worker_id"`
	Added        bool   `json:"added"`
	WorkerCount  int    `json:"worker_count"`
	Capacity     int    `json:"capacity"`
}

// BonusDTO is the outcome of a bonus request.
type BonusDTO struct {
	SupervisorID string `json:"supervisor_id"`
	Granted      bool   `json:"granted"`
	Salary       int    `json:"salary"`
}

// ScenarioDTO describes a builtin scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest selects a builtin scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// LoadScenarioDTO reports the IDs created by a scenario.
type LoadScenarioDTO struct {
	ScenarioID  string            `json:"scenario_id"`
	IDs         map[string]string `json:"ids"`
	RosterFull  []string          `json:"roster_full,omitempty"`
	BonusesPaid []string          `json:"bonuses_paid,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func fieldNames(fs []payroll.Field) []string {
	if len(fs) == 0 {
		return nil
	}
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}

func toWorkerDTO(id string, w *payroll.ProductionWorker) WorkerDTO {
	return WorkerDTO{
		ID:              id,
		Name:            w.Name(),
		Number:          w.Number(),
		HasBenefits:     w.HasBenefits(),
		Shift:           w.Shift().String(),
		HourlyRate:      w.HourlyRate(),
		HoursWorked:     w.HoursWorked(),
		GrossPay:        w.WeeklyPay(),
		DefaultedFields: fieldNames(w.DefaultedFields()),
	}
}

func toRosterDTOs(roster []*payroll.ProductionWorker) []WorkerDTO {
	out := make([]WorkerDTO, len(roster))
	for i, w := range roster {
		out[i] = toWorkerDTO("", w)
		out[i].DefaultedFields = nil
	}
	return out
}

func toSupervisorDTO(id string, s *payroll.ShiftSupervisor) SupervisorDTO {
	return SupervisorDTO{
		ID:              id,
		Name:            s.Name(),
		Number:          s.Number(),
		HasBenefits:     s.HasBenefits(),
		Shift:           s.Shift().String(),
		Salary:          s.Salary(),
		Capacity:        s.Capacity(),
		WorkerCount:     s.WorkerCount(),
		Roster:          toRosterDTOs(s.Roster()),
		DefaultedFields: fieldNames(s.DefaultedFields()),
	}
}

func toMemberDTO(id string, m *payroll.Member401k) MemberDTO {
	return MemberDTO{
		ID:                id,
		Name:              m.Name(),
		Number:            m.Number(),
		HasBenefits:       m.HasBenefits(),
		Shift:             m.Shift().String(),
		Role:              string(m.Role()),
		HourlyRate:        m.HourlyRate(),
		HoursWorked:       m.HoursWorked(),
		GrossPay:          m.WeeklyPay(),
		Salary:            m.Salary(),
		Capacity:          m.Capacity(),
		WorkerCount:       m.WorkerCount(),
		Roster:            toRosterDTOs(m.Roster()),
		AccountNumber:     m.AccountNumber(),
		ContributedAmount: m.ContributedAmount(),
		MonthlyPay:        m.MonthlyPay(),
		MaxMatch:          m.MaxMatch(),
		ActualMatch:       m.ActualMatch(),
		DefaultedFields:   fieldNames(m.DefaultedFields()),
	}
}
