/*
scenarios.go - Demo scenario endpoints

PURPOSE:
  Lists and loads the builtin scenarios from the scenario package. Loading
  a scenario resets the registry first, then creates its entities and
  replays its roster, contribution and bonus operations.

USAGE VIA API:
  GET  /api/scenarios
  GET  /api/scenarios/current
  POST /api/scenarios/load   {"scenario_id": "demo-members"}
  POST /api/scenarios/reset

NOTE:
  Loading resets every entity. Only use in development/demo environments.

SEE ALSO:
  - scenario/scenario.go: Scenario format and Apply
  - scenario/builtin/: Embedded scenario files
*/
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/warp/compensation-engine/scenario"
)

func toScenarioDTO(s *scenario.Scenario) ScenarioDTO {
	return ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description, Category: s.Category}
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	all := scenario.Builtin()
	dtos := make([]ScenarioDTO, len(all))
	for i, s := range all {
		dtos[i] = toScenarioDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	s, err := scenario.Get(current)
	if err != nil {
		// loaded from a file at startup
		writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
		return
	}
	writeJSON(w, http.StatusOK, toScenarioDTO(s))
}

// LoadScenario resets the registry and loads a builtin scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s, err := scenario.Get(req.ScenarioID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dto, err := h.ApplyScenario(s)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// ApplyScenario resets the registry and applies s. It is also used at
// startup for PAYROLL_SCENARIO_FILE.
func (h *Handler) ApplyScenario(s *scenario.Scenario) (*LoadScenarioDTO, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Registry.Reset()
	h.currentScenario = ""
	res, err := s.Apply(h.Registry)
	if err != nil {
		// drop the partial population
		h.Registry.Reset()
		return nil, err
	}
	h.currentScenario = s.ID

	dto := &LoadScenarioDTO{ScenarioID: s.ID, IDs: res.IDs}
	for _, a := range res.Assignments {
		if a.Err != nil {
			dto.RosterFull = append(dto.RosterFull, a.Worker)
		}
	}
	for _, b := range res.Bonuses {
		if b.Granted {
			dto.BonusesPaid = append(dto.BonusesPaid, b.Supervisor)
		}
	}
	h.Logger.Info("scenario loaded",
		zap.String("scenario", s.ID),
		zap.Int("entities", len(res.IDs)),
		zap.Strings("roster_full", dto.RosterFull))
	return dto, nil
}

// ResetRegistry removes every entity.
func (h *Handler) ResetRegistry(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.Registry.Reset()
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
