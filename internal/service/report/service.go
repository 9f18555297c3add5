package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/employee"
	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
	"github.com/bittarwork/altrohr-payroll/internal/domain/report"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/retry"
	"github.com/bittarwork/altrohr-payroll/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ServiceImpl struct {
	db            *database.DB
	reportRepo    report.Repository
	employeeRepo  employee.Repository
	payrollSvc    payroll.Service
	workers       int
	retryAttempts int
}

func NewReportService(
	db *database.DB,
	reportRepo report.Repository,
	employeeRepo employee.Repository,
	payrollSvc payroll.Service,
	workers int,
	retryAttempts int,
) report.Service {
	if workers < 1 {
		workers = 1
	}
	return &ServiceImpl{
		db:            db,
		reportRepo:    reportRepo,
		employeeRepo:  employeeRepo,
		payrollSvc:    payrollSvc,
		workers:       workers,
		retryAttempts: retryAttempts,
	}
}

// task is one (employee, month) computation of a batch.
type task struct {
	employeeID string
	month      payroll.Month
}

// outcome is the result of one task. A failure is demoted to a report
// warning; the statement for that employee/month is simply omitted.
type outcome struct {
	statement payroll.Statement
	failed    bool
	warning   payroll.Warning
}

func (s *ServiceImpl) Generate(ctx context.Context, req report.GenerateRequest) (report.Report, error) {
	params, months, err := parseRequest(req)
	if err != nil {
		return report.Report{}, err
	}

	employees, err := s.resolveEmployees(ctx, params.Filter)
	if err != nil {
		return report.Report{}, err
	}
	if len(employees) == 0 {
		return report.Report{}, report.ErrEmptyBatch
	}

	tasks := make([]task, 0, len(employees)*len(months))
	for _, emp := range employees {
		for _, m := range months {
			tasks = append(tasks, task{employeeID: emp.ID, month: m})
		}
	}

	// Each computation is pure given its fetched inputs, so the fan-out is
	// safe; the limit caps the load on the attendance and leave stores.
	outcomes := make([]outcome, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			var st payroll.Statement
			err := retry.Do(gctx, s.retryAttempts, 100*time.Millisecond, func(ctx context.Context) error {
				var computeErr error
				st, computeErr = s.payrollSvc.ComputeStatement(ctx, t.employeeID, t.month)
				if isFatalForEmployee(computeErr) {
					// Not transient, don't burn retries on it.
					st = payroll.Statement{}
					outcomes[i] = failedOutcome(t, computeErr)
					return nil
				}
				return computeErr
			})
			if err != nil {
				return err
			}
			if !outcomes[i].failed {
				outcomes[i] = outcome{statement: st}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Report{}, err
	}

	// Nothing has been written yet; a cancelled batch leaves no trace.
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	rep := assemble(report.Category(req.Category), params, employees, outcomes)
	rep.ContentHash = contentHash(params, outcomes)

	if existing, err := s.reportRepo.GetByContentHash(ctx, rep.ContentHash); err == nil {
		slog.Info("report unchanged, returning existing", "report_id", existing.ID, "content_hash", existing.ContentHash)
		return existing, nil
	} else if err != report.ErrReportNotFound {
		return report.Report{}, err
	}

	// Statements and the report commit together or not at all.
	var persisted report.Report
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		refs := make([]string, 0, len(outcomes))
		for _, o := range outcomes {
			if o.failed {
				continue
			}
			st, err := s.payrollSvc.PersistComputed(txCtx, o.statement)
			if err != nil {
				return fmt.Errorf("failed to persist statement for %s: %w", o.statement.EmployeeID, err)
			}
			refs = append(refs, st.ID)
		}
		rep.StatementRefs = refs

		var txErr error
		persisted, txErr = s.reportRepo.Create(txCtx, rep)
		return txErr
	})
	if err != nil {
		return report.Report{}, err
	}

	slog.Info("report generated",
		"report_id", persisted.ID, "category", persisted.Category,
		"employees", len(employees), "statements", len(persisted.StatementRefs),
		"warnings", len(persisted.Warnings))
	return persisted, nil
}

func (s *ServiceImpl) GenerateForUser(ctx context.Context, employeeID, month string) (report.Report, error) {
	return s.Generate(ctx, report.GenerateRequest{
		Category:    string(report.CategoryUser),
		EmployeeIDs: []string{employeeID},
		From:        month,
		To:          month,
	})
}

func (s *ServiceImpl) List(ctx context.Context) ([]report.Report, error) {
	return s.reportRepo.List(ctx)
}

func (s *ServiceImpl) GetByID(ctx context.Context, id string) (report.Report, error) {
	return s.reportRepo.GetByID(ctx, id)
}

func (s *ServiceImpl) resolveEmployees(ctx context.Context, filter report.Filter) ([]employee.Employee, error) {
	switch {
	case len(filter.EmployeeIDs) > 0:
		return s.employeeRepo.ListByIDs(ctx, filter.EmployeeIDs)
	case filter.Department != "":
		return s.employeeRepo.ListByDepartment(ctx, filter.Department)
	case filter.All:
		return s.employeeRepo.ListActive(ctx)
	default:
		return nil, report.ErrInvalidFilter
	}
}

func parseRequest(req report.GenerateRequest) (report.Params, []payroll.Month, error) {
	category := report.Category(req.Category)
	if category != report.CategoryUser && category != report.CategoryPayroll {
		return report.Params{}, nil, report.ErrInvalidCategory
	}

	from, err := payroll.ParseMonth(req.From)
	if err != nil {
		return report.Params{}, nil, report.ErrInvalidRange
	}
	to, err := payroll.ParseMonth(req.To)
	if err != nil {
		return report.Params{}, nil, report.ErrInvalidRange
	}
	if from.After(to) {
		return report.Params{}, nil, report.ErrInvalidRange
	}

	var months []payroll.Month
	for m := from; !m.After(to); m = m.Next() {
		months = append(months, m)
	}

	params := report.Params{
		Filter: report.Filter{
			EmployeeIDs: req.EmployeeIDs,
			Department:  req.Department,
			All:         req.All,
		},
		From: from.String(),
		To:   to.String(),
	}
	return params, months, nil
}

// isFatalForEmployee reports whether a computation error is a property of
// the employee's data rather than of the stores. Only these are demoted to a
// report warning with the employee omitted. A store error that survives its
// retries fails the whole batch instead: silently dropping an employee over
// an outage would produce a report that looks complete but is not.
func isFatalForEmployee(err error) bool {
	return err == payroll.ErrNoPlanForPeriod || err == payroll.ErrUnknownEmployee
}

func failedOutcome(t task, err error) outcome {
	return outcome{
		failed: true,
		warning: payroll.Warning{
			Code:    payroll.WarningStatementFailed,
			Date:    t.month.String() + "-01",
			Message: fmt.Sprintf("statement for employee %s, month %s: %v", t.employeeID, t.month, err),
		},
	}
}

func assemble(category report.Category, params report.Params, employees []employee.Employee, outcomes []outcome) report.Report {
	rep := report.Report{
		Category:    category,
		Params:      params,
		GeneratedAt: time.Now().UTC(),
		Summary: report.Summary{
			EmployeeCount:      len(employees),
			TotalGross:         decimal.Zero,
			AverageGross:       decimal.Zero,
			TotalRegularHours:  decimal.Zero,
			TotalOvertimeHours: decimal.Zero,
		},
	}

	for _, o := range outcomes {
		if o.failed {
			rep.Warnings = append(rep.Warnings, o.warning)
			continue
		}
		st := o.statement
		rep.Summary.StatementCount++
		rep.Summary.TotalGross = rep.Summary.TotalGross.Add(st.GrossPay)
		rep.Summary.TotalRegularHours = rep.Summary.TotalRegularHours.Add(st.RegularHours)
		rep.Summary.TotalOvertimeHours = rep.Summary.TotalOvertimeHours.Add(st.OvertimeHours)
		rep.Summary.PaidLeaveDays += st.PaidLeaveDays
		rep.Summary.UnpaidDays += st.UnpaidDays
		rep.Warnings = append(rep.Warnings, st.Warnings...)
	}

	if rep.Summary.StatementCount > 0 {
		rep.Summary.AverageGross = rep.Summary.TotalGross.
			Div(decimal.NewFromInt(int64(rep.Summary.StatementCount))).
			Round(2)
	}
	return rep
}

// contentHash fingerprints the generation parameters plus the inputs hash of
// every statement in the batch (and the failure signature of every omitted
// one). Identical parameters over unchanged underlying data therefore hash
// to the report already persisted.
func contentHash(params report.Params, outcomes []outcome) string {
	entries := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o.failed {
			entries = append(entries, "failed:"+o.warning.Message)
			continue
		}
		entries = append(entries, o.statement.EmployeeID+":"+o.statement.Month.String()+":"+o.statement.InputsHash)
	}
	sort.Strings(entries)

	payload := struct {
		Params  report.Params `json:"params"`
		Entries []string      `json:"entries"`
	}{Params: params, Entries: entries}

	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
