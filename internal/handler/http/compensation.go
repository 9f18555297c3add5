package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bittarwork/altrohr-payroll/internal/domain/compensation"
	"github.com/bittarwork/altrohr-payroll/internal/handler/http/response"
)

type CompensationHandler interface {
	CreatePlan(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type compensationHandlerImpl struct {
	compensationService compensation.Service
}

func NewCompensationHandler(compensationService compensation.Service) CompensationHandler {
	return &compensationHandlerImpl{
		compensationService: compensationService,
	}
}

// CreatePlan implements CompensationHandler.
func (h *compensationHandlerImpl) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req compensation.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	plan, err := h.compensationService.AddPlan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Compensation plan created", map[string]interface{}{
		"plan": compensation.NewPlanResponse(plan),
	})
}

// GetHistory implements CompensationHandler.
func (h *compensationHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	plans, err := h.compensationService.History(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]compensation.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		result = append(result, compensation.NewPlanResponse(plan))
	}

	response.Success(w, result)
}
