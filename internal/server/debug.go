package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// DebugHandler предоставляет доступ к внутреннему состоянию боя
type DebugHandler struct {
	Match *Match
}

func NewDebugHandler(m *Match) *DebugHandler {
	return &DebugHandler{Match: m}
}

// RegisterRoutes регистрирует debug-эндпоинты на саброутере /debug
func (h *DebugHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/state", h.handleState).Methods(http.MethodGet)
	r.HandleFunc("/units/{army:[ab]}", h.handleUnits).Methods(http.MethodGet)
	r.HandleFunc("/invariants", h.handleInvariants).Methods(http.MethodGet)
}

// /debug/state - полный последний снапшот
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Match.Snapshot())
}

// /debug/units/a - ростер одной армии с текущими статами
func (h *DebugHandler) handleUnits(w http.ResponseWriter, r *http.Request) {
	snap := h.Match.Snapshot()
	units := snap.ArmyA
	if mux.Vars(r)["army"] == "b" {
		units = snap.ArmyB
	}
	if len(units) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, units)
}

// /debug/invariants - 200 если сетка и индекс позиций согласованы, иначе 500 с описанием
func (h *DebugHandler) handleInvariants(w http.ResponseWriter, r *http.Request) {
	snap := h.Match.Snapshot()
	if snap.Invariant != "" {
		http.Error(w, snap.Invariant, http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "turn": snap.Turn})
}
