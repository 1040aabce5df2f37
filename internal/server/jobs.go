package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/swiftgentle/jobcost/internal/config"
	"github.com/swiftgentle/jobcost/internal/store"
	"github.com/swiftgentle/jobcost/pkg/analysis"
	"github.com/swiftgentle/jobcost/pkg/constants"
	"github.com/swiftgentle/jobcost/pkg/costing"
	"github.com/swiftgentle/jobcost/pkg/output"
	"github.com/swiftgentle/jobcost/pkg/roster"
	"github.com/swiftgentle/jobcost/pkg/validation"
)

// jobRequest is the body of the metrics and save endpoints. Employees
// overrides the stored roster when present.
type jobRequest struct {
	Customer      string                 `json:"customer"`
	Job           jobPayload             `json:"job"`
	Hours         costing.HoursTable     `json:"hours"`
	Employees     costing.WageTable      `json:"employees,omitempty"`
	RevenueSource analysis.RevenueSource `json:"revenueSource"`
}

type jobPayload struct {
	JobRevenue         float64  `json:"jobRevenue"`
	FuelCost           float64  `json:"fuelCost"`
	VehicleCosts       float64  `json:"vehicleCosts"`
	EquipmentCosts     float64  `json:"equipmentCosts"`
	MaterialsCosts     float64  `json:"materialsCosts"`
	OverheadPercentage *float64 `json:"overheadPercentage"`
}

func (p jobPayload) inputs() costing.JobInputs {
	in := costing.JobInputs{
		JobRevenue:         p.JobRevenue,
		FuelCost:           p.FuelCost,
		VehicleCosts:       p.VehicleCosts,
		EquipmentCosts:     p.EquipmentCosts,
		MaterialsCosts:     p.MaterialsCosts,
		OverheadPercentage: costing.DefaultOverheadPercentage,
	}
	if p.OverheadPercentage != nil {
		in.OverheadPercentage = *p.OverheadPercentage
	}
	return in
}

type jobResponse struct {
	Job      *store.JobRecord `json:"job,omitempty"`
	Report   analysis.Report  `json:"report"`
	Warnings []string         `json:"warnings,omitempty"`
}

type computedJob struct {
	wages    costing.WageTable
	hours    costing.HoursTable
	inputs   costing.JobInputs
	report   analysis.Report
	warnings []string
}

// computeJob resolves the wage table and runs the cost engine for a request.
func (h *handler) computeJob(r *http.Request, req jobRequest) (computedJob, error) {
	wages := roster.Normalize(req.Employees)
	if len(wages) == 0 {
		stored, err := h.store.ListEmployees(r.Context())
		if err != nil {
			return computedJob{}, err
		}
		wages = stored
	}
	hours := roster.NormalizeHours(req.Hours)

	inputs, metrics, err := analysis.ComputeWithRevenue(req.RevenueSource, wages, hours, req.Job.inputs())
	if err != nil {
		return computedJob{}, err
	}

	return computedJob{
		wages:    wages,
		hours:    hours,
		inputs:   inputs,
		report:   analysis.NewReport(strings.TrimSpace(req.Customer), hours, inputs, metrics),
		warnings: validation.InputWarnings(wages, hours, inputs),
	}, nil
}

func (h *handler) handleJobMetrics(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleJobMetrics"

	var req jobRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	job, err := h.computeJob(r, req)
	if err != nil {
		h.respondJobError(w, err, op)
		return
	}

	h.logger.Debug("job metrics computed",
		zap.String("op", op),
		zap.Float64("totalCost", job.report.Metrics.TotalCost),
		zap.Float64("profit", job.report.Metrics.Profit),
	)
	h.writeJSON(w, http.StatusOK, jobResponse{Report: job.report, Warnings: job.warnings})
}

func (h *handler) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaveJob"

	var req jobRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	job, err := h.computeJob(r, req)
	if err != nil {
		h.respondJobError(w, err, op)
		return
	}

	rec, err := h.store.SaveJob(r.Context(), store.JobRecord{
		Customer: job.report.Customer,
		Inputs:   job.inputs,
		Hours:    job.hours,
		Wages:    job.wages,
	})
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	w.Header().Set("Location", "/api/jobs/"+rec.ID)
	h.writeJSON(w, http.StatusCreated, jobResponse{Job: &rec, Report: job.report, Warnings: job.warnings})
}

func (h *handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListJobs"

	limit, err := queryLimit(r)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	jobs, err := h.store.ListJobs(r.Context(), limit)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

func (h *handler) loadJob(w http.ResponseWriter, r *http.Request, op string) (store.JobRecord, analysis.Report, bool) {
	rec, err := h.store.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return store.JobRecord{}, analysis.Report{}, false
	}
	return rec, analysis.BuildReport(rec.Customer, rec.Wages, rec.Hours, rec.Inputs), true
}

func (h *handler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	rec, report, ok := h.loadJob(w, r, "server.handleGetJob")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, jobResponse{Job: &rec, Report: report})
}

func (h *handler) handleExportJob(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportJob"

	exportFormat := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if exportFormat == "" {
		exportFormat = constants.OutputFormatCSV
	}
	if err := validation.ValidateExportFormat(exportFormat); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	rec, report, ok := h.loadJob(w, r, op)
	if !ok {
		return
	}

	var (
		body        []byte
		contentType string
	)
	switch exportFormat {
	case constants.OutputFormatCSV:
		body = []byte(output.CsvString(report))
		contentType = "text/csv"
	case constants.ExportFormatYAML:
		data, err := yaml.Marshal(config.NewJobFile(rec.Customer, rec.Inputs, rec.Wages, rec.Hours))
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode job: %v", err), op)
			return
		}
		body = data
		contentType = "application/yaml"
	case constants.OutputFormatJSON:
		var buf bytes.Buffer
		if err := output.WriteJSON(&buf, report); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode job: %v", err), op)
			return
		}
		body = buf.Bytes()
		contentType = "application/json"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "job-"+rec.ID+"."+exportFormat))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write export", zap.String("op", op), zap.Error(err))
	}
}

// respondJobError reports a failed job computation. Only storage failures
// are server errors; anything else is a problem with the request.
func (h *handler) respondJobError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, analysis.ErrUnknownRevenueSource) {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.respondStoreError(w, err, op)
}
