package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
	"github.com/bittarwork/altrohr-payroll/internal/handler/http/response"
)

type PayrollHandler interface {
	GenerateStatement(w http.ResponseWriter, r *http.Request)
	GetUserStatements(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// GenerateStatement implements PayrollHandler.
func (h *payrollHandlerImpl) GenerateStatement(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.UserID == "" {
		response.ValidationError(w, "userId is required")
		return
	}

	month, err := payroll.ParseMonth(req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	st, err := h.payrollService.GenerateStatement(r.Context(), req.UserID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary statement generated", map[string]interface{}{
		"statement": payroll.NewStatementResponse(st),
	})
}

// GetUserStatements implements PayrollHandler.
func (h *payrollHandlerImpl) GetUserStatements(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	statements, err := h.payrollService.StatementsForEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]payroll.StatementResponse, 0, len(statements))
	for _, st := range statements {
		result = append(result, payroll.NewStatementResponse(st))
	}

	response.Success(w, result)
}
