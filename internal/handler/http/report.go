package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bittarwork/altrohr-payroll/internal/domain/report"
	"github.com/bittarwork/altrohr-payroll/internal/handler/http/response"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateForUser(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Generate implements ReportHandler.
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rep, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report generated", map[string]interface{}{
		"report": report.NewResponse(rep),
	})
}

// GenerateForUser implements ReportHandler.
func (h *reportHandlerImpl) GenerateForUser(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rep, err := h.reportService.GenerateForUser(r.Context(), req.UserID, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report generated", map[string]interface{}{
		"report": report.NewResponse(rep),
	})
}

// List implements ReportHandler.
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]report.Response, 0, len(reports))
	for _, rep := range reports {
		result = append(result, report.NewResponse(rep))
	}

	response.Success(w, result)
}

// GetByID implements ReportHandler.
func (h *reportHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rep, err := h.reportService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"report": report.NewResponse(rep),
	})
}
