package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftgentle/jobcost/pkg/roster"
)

type employee struct {
	Name string  `json:"name"`
	Wage float64 `json:"wage"`
}

type wageRequest struct {
	Wage float64 `json:"wage"`
}

func (h *handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	wages, err := h.store.ListEmployees(r.Context())
	if err != nil {
		h.respondStoreError(w, err, "server.handleListEmployees")
		return
	}

	employees := make([]employee, 0, len(wages))
	for _, name := range roster.Names(wages) {
		employees = append(employees, employee{Name: name, Wage: wages[name]})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

func (h *handler) handlePutEmployee(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePutEmployee"

	var req wageRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	name := roster.NormalizeName(chi.URLParam(r, "name"))
	if err := h.store.UpsertEmployee(r.Context(), name, req.Wage); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, employee{Name: name, Wage: req.Wage})
}

func (h *handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEmployee(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.respondStoreError(w, err, "server.handleDeleteEmployee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
