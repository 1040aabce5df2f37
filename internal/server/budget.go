package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/swiftgentle/jobcost/pkg/budget"
)

type budgetResponse struct {
	Departments budget.Departments       `json:"departments"`
	Totals      map[string]float64       `json:"totals"`
	Shares      []budget.DepartmentShare `json:"shares"`
	Summary     budget.Summary           `json:"summary"`
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

func (h *handler) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetBudget"

	var revenue float64
	if raw := strings.TrimSpace(r.URL.Query().Get("revenue")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid revenue %q", raw), op)
			return
		}
		revenue = v
	}

	departments, err := h.store.LoadBudget(r.Context())
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, budgetResponse{
		Departments: departments,
		Totals:      budget.Totals(departments),
		Shares:      budget.Shares(departments),
		Summary:     budget.Summarize(departments, revenue),
	})
}

func (h *handler) handleAddDepartment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddDepartment"

	dept := strings.TrimSpace(chi.URLParam(r, "department"))
	departments, err := h.store.AddDepartment(r.Context(), dept)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	w.Header().Set("Location", "/api/budget")
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"department":    dept,
		"subcategories": departments[dept],
	})
}

func (h *handler) handlePutBudgetItem(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePutBudgetItem"

	var req amountRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	dept := chi.URLParam(r, "department")
	sub := chi.URLParam(r, "subcategory")
	if err := h.store.SaveSubcategory(r.Context(), dept, sub, req.Amount); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"department":  dept,
		"subcategory": sub,
		"amount":      req.Amount,
	})
}

func (h *handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDepartment(r.Context(), chi.URLParam(r, "department")); err != nil {
		h.respondStoreError(w, err, "server.handleDeleteDepartment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListSnapshots"

	limit, err := queryLimit(r)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	snapshots, err := h.store.ListSnapshots(r.Context(), limit)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshots": snapshots})
}
