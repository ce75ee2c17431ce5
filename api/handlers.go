/*
handlers.go - HTTP API handlers for the compensation model

PURPOSE:
  Exposes the payroll model via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the registry, which serializes
  access to the (non thread-safe) payroll entities.

ENDPOINTS:
  Workers:
    GET    /api/workers                   List workers
    POST   /api/workers                   Create worker from a field bag
    GET    /api/workers/{id}              Get worker
    PATCH  /api/workers/{id}              Re-run setters for supplied fields

  Supervisors:
    GET    /api/supervisors               List supervisors
    POST   /api/supervisors               Create supervisor from a field bag
    GET    /api/supervisors/{id}          Get supervisor with roster
    POST   /api/supervisors/{id}/workers  Add a worker to the roster
    POST   /api/supervisors/{id}/bonus    Apply the bonus rule

  Members:
    GET    /api/members                   List 401k members
    POST   /api/members                   Create member from a field bag
    GET    /api/members/{id}              Get member
    GET    /api/members/{id}/report       Plain-text summary
    PUT    /api/members/{id}/contribution Change contributed amount
    POST   /api/members/{id}/recalculate  Re-derive the match from stored pay

ERROR HANDLING:
  Invalid field values are NOT errors: they are sanitized to defaults and
  listed in defaulted_fields. Errors are returned as JSON with status:
  - 400: Malformed JSON, worker-role member used as a supervisor
  - 404: Unknown ID or scenario
  - 409: Roster full
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/compensation-engine/metrics"
	"github.com/warp/compensation-engine/payroll"
	"github.com/warp/compensation-engine/registry"
	"github.com/warp/compensation-engine/report"
	"github.com/warp/compensation-engine/scenario"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registry *registry.Memory
	Logger   *zap.Logger
	Metrics  *metrics.Metrics

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler. A nil logger disables logging.
func NewHandler(reg *registry.Memory, logger *zap.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Handler{
		Registry: reg,
		Logger:   logger,
		Metrics:  m,
	}
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

// ListWorkers returns all workers.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	ids := h.Registry.IDs(registry.KindWorker)
	dtos := make([]WorkerDTO, 0, len(ids))
	for _, id := range ids {
		// an ID removed by a concurrent reset is skipped
		_ = h.Registry.ReadWorker(id, func(pw *payroll.ProductionWorker) error {
			dtos = append(dtos, toWorkerDTO(id, pw))
			return nil
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWorker creates a worker from a field bag.
func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id := h.Registry.AddWorker(fields)
	var dto WorkerDTO
	_ = h.Registry.ReadWorker(id, func(pw *payroll.ProductionWorker) error {
		dto = toWorkerDTO(id, pw)
		return nil
	})
	h.created(registry.KindWorker, id, dto.DefaultedFields)
	writeJSON(w, http.StatusCreated, dto)
}

// GetWorker returns a single worker.
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var dto WorkerDTO
	err := h.Registry.ReadWorker(id, func(pw *payroll.ProductionWorker) error {
		dto = toWorkerDTO(id, pw)
		return nil
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// UpdateWorker re-runs the validating setter of every supplied field.
// Unsupplied fields are left unchanged.
func (h *Handler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var dto WorkerDTO
	var defaulted []string
	err = h.Registry.UpdateWorker(id, func(pw *payroll.ProductionWorker) error {
		setters := map[payroll.Field]func(any) bool{
			payroll.FieldName:   pw.SetName,
			payroll.FieldNumber: pw.SetNumber,
			payroll.FieldShift:  pw.SetShift,
			payroll.FieldRate:   pw.SetHourlyRate,
			payroll.FieldHours:  pw.SetHoursWorked,
		}
		defaulted = applySetters(fields, setters)
		dto = toWorkerDTO(id, pw)
		dto.DefaultedFields = defaulted
		return nil
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.Metrics.ObserveDefaulted(defaulted)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// SUPERVISOR HANDLERS
// =============================================================================

// ListSupervisors returns all supervisors.
func (h *Handler) ListSupervisors(w http.ResponseWriter, r *http.Request) {
	ids := h.Registry.IDs(registry.KindSupervisor)
	dtos := make([]SupervisorDTO, 0, len(ids))
	for _, id := range ids {
		_ = h.Registry.ReadSupervisor(id, func(s *payroll.ShiftSupervisor) error {
			dtos = append(dtos, toSupervisorDTO(id, s))
			return nil
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSupervisor creates a supervisor from a field bag.
func (h *Handler) CreateSupervisor(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id := h.Registry.AddSupervisor(fields)
	var dto SupervisorDTO
	_ = h.Registry.ReadSupervisor(id, func(s *payroll.ShiftSupervisor) error {
		dto = toSupervisorDTO(id, s)
		return nil
	})
	h.created(registry.KindSupervisor, id, dto.DefaultedFields)
	writeJSON(w, http.StatusCreated, dto)
}

// GetSupervisor returns a supervisor with its roster.
func (h *Handler) GetSupervisor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var dto SupervisorDTO
	err := h.Registry.ReadSupervisor(id, func(s *payroll.ShiftSupervisor) error {
		dto = toSupervisorDTO(id, s)
		return nil
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// AssignWorker adds a worker to a supervisor's (or supervisor-role
// member's) roster.
func (h *Handler) AssignWorker(w http.ResponseWriter, r *http.Request) {
	supervisorID := chi.URLParam(r, "id")
	var req AssignWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	added, err := h.Registry.AssignWorker(supervisorID, req.WorkerID)
	if errors.Is(err, payroll.ErrRosterFull) {
		h.Metrics.ObserveRosterAdd("full")
		h.Logger.Warn("roster full",
			zap.String("supervisor_id", supervisorID),
			zap.String("worker_id", req.WorkerID),
			zap.Error(err))
	}
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if added {
		h.Metrics.ObserveRosterAdd("added")
	} else {
		h.Metrics.ObserveRosterAdd("shift_mismatch")
		h.Logger.Debug("worker shift does not match supervisor",
			zap.String("supervisor_id", supervisorID),
			zap.String("worker_id", req.WorkerID))
	}

	dto := AssignWorkerDTO{SupervisorID: supervisorID, WorkerID: req.WorkerID, Added: added}
	h.fillRosterCounts(supervisorID, &dto)
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) fillRosterCounts(id string, dto *AssignWorkerDTO) {
	err := h.Registry.ReadSupervisor(id, func(s *payroll.ShiftSupervisor) error {
		dto.WorkerCount, dto.Capacity = s.WorkerCount(), s.Capacity()
		return nil
	})
	if err == nil {
		return
	}
	_ = h.Registry.ReadMember(id, func(m *payroll.Member401k) error {
		dto.WorkerCount, dto.Capacity = m.WorkerCount(), m.Capacity()
		return nil
	})
}

// GrantBonus applies the bonus rule. Repeated calls while eligible keep
// raising the salary.
func (h *Handler) GrantBonus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	granted, salary, err := h.Registry.GrantBonus(id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if granted {
		h.Metrics.IncrementBonus()
		h.Logger.Info("bonus granted", zap.String("supervisor_id", id), zap.Int("salary", salary))
	}
	writeJSON(w, http.StatusOK, BonusDTO{SupervisorID: id, Granted: granted, Salary: salary})
}

// =============================================================================
// MEMBER HANDLERS
// =============================================================================

// ListMembers returns all 401k members.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ids := h.Registry.IDs(registry.KindMember)
	dtos := make([]MemberDTO, 0, len(ids))
	for _, id := range ids {
		_ = h.Registry.ReadMember(id, func(m *payroll.Member401k) error {
			dtos = append(dtos, toMemberDTO(id, m))
			return nil
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMember creates a 401k member from a field bag.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id := h.Registry.AddMember(fields)
	var dto MemberDTO
	_ = h.Registry.ReadMember(id, func(m *payroll.Member401k) error {
		dto = toMemberDTO(id, m)
		return nil
	})
	h.created(registry.KindMember, id, dto.DefaultedFields)
	writeJSON(w, http.StatusCreated, dto)
}

// GetMember returns a single member.
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var dto MemberDTO
	err := h.Registry.ReadMember(id, func(m *payroll.Member401k) error {
		dto = toMemberDTO(id, m)
		return nil
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetMemberReport returns the plain-text summary of a member.
func (h *Handler) GetMemberReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var buf bytes.Buffer
	err := h.Registry.ReadMember(id, func(m *payroll.Member401k) error {
		return report.Write(&buf, m)
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// UpdateContribution changes the contributed amount. The body is a field
// bag; only contributedAmount is read.
func (h *Handler) UpdateContribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var dto MemberDTO
	var defaulted bool
	err = h.Registry.UpdateMember(id, func(m *payroll.Member401k) error {
		defaulted = m.SetContributedAmount(fields.Get(payroll.FieldContributedAmount))
		dto = toMemberDTO(id, m)
		return nil
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dto.DefaultedFields = nil
	if defaulted {
		dto.DefaultedFields = []string{string(payroll.FieldContributedAmount)}
		h.Metrics.ObserveDefaulted(dto.DefaultedFields)
	}
	writeJSON(w, http.StatusOK, dto)
}

// RecalculateMatch re-derives the member's match from stored pay.
func (h *Handler) RecalculateMatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var dto MemberDTO
	err := h.Registry.UpdateMember(id, func(m *payroll.Member401k) error {
		m.RecalculateMatch()
		dto = toMemberDTO(id, m)
		return nil
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) created(kind registry.Kind, id string, defaulted []string) {
	h.Metrics.IncrementCreated(string(kind))
	h.Metrics.ObserveDefaulted(defaulted)
	if len(defaulted) > 0 {
		h.Logger.Debug("sanitized fields on create",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.Strings("fields", defaulted))
	}
}

// decodeFields reads a JSON object into a payroll field bag. Numbers stay
// json.Number so integral values validate and fractional ones default.
func decodeFields(r *http.Request) (payroll.Fields, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	fields := make(payroll.Fields, len(raw))
	for k, v := range raw {
		fields[payroll.Field(k)] = v
	}
	return fields, nil
}

func applySetters(fields payroll.Fields, setters map[payroll.Field]func(any) bool) []string {
	var defaulted []string
	for _, key := range []payroll.Field{
		payroll.FieldName, payroll.FieldNumber, payroll.FieldShift, payroll.FieldRate, payroll.FieldHours,
	} {
		set, ok := setters[key]
		if !ok || !fields.Has(key) {
			continue
		}
		if set(fields.Get(key)) {
			defaulted = append(defaulted, string(key))
		}
	}
	return defaulted
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, scenario.ErrUnknownScenario):
		writeError(w, http.StatusNotFound, "Scenario not found", err)
	case errors.Is(err, payroll.ErrRosterFull):
		writeErrorCode(w, http.StatusConflict, "Roster full", "roster_full", err)
	case errors.Is(err, registry.ErrNotRosterOwner):
		writeErrorCode(w, http.StatusBadRequest, "Not a supervisor", "not_roster_owner", err)
	default:
		h.Logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeErrorCode(w, status, message, "", err)
}

func writeErrorCode(w http.ResponseWriter, status int, message, code string, err error) {
	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
