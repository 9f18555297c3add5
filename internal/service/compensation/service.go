package compensation

import (
	"context"
	"log/slog"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/compensation"
	"github.com/bittarwork/altrohr-payroll/internal/domain/employee"
)

type ServiceImpl struct {
	planRepo     compensation.PlanRepository
	employeeRepo employee.Repository
}

func NewCompensationService(planRepo compensation.PlanRepository, employeeRepo employee.Repository) compensation.Service {
	return &ServiceImpl{planRepo: planRepo, employeeRepo: employeeRepo}
}

func (s *ServiceImpl) Resolve(ctx context.Context, employeeID string, date time.Time) (compensation.Plan, error) {
	plans, err := s.planRepo.HistoryForEmployee(ctx, employeeID)
	if err != nil {
		return compensation.Plan{}, err
	}

	plan, ok := compensation.ResolveAt(plans, date)
	if !ok {
		return compensation.Plan{}, compensation.ErrNoPlanEffective
	}
	return plan, nil
}

func (s *ServiceImpl) AddPlan(ctx context.Context, req compensation.CreatePlanRequest) (compensation.Plan, error) {
	plan, err := req.Parse()
	if err != nil {
		return compensation.Plan{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, plan.EmployeeID); err != nil {
		return compensation.Plan{}, err
	}

	created, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return compensation.Plan{}, err
	}

	slog.Info("compensation plan added",
		"employee_id", created.EmployeeID, "kind", created.Kind,
		"effective_from", created.EffectiveFrom.Format("2006-01-02"))
	return created, nil
}

func (s *ServiceImpl) History(ctx context.Context, employeeID string) ([]compensation.Plan, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.planRepo.HistoryForEmployee(ctx, employeeID)
}
