package payroll

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
	"github.com/bittarwork/altrohr-payroll/internal/domain/compensation"
	"github.com/bittarwork/altrohr-payroll/internal/domain/employee"
	"github.com/bittarwork/altrohr-payroll/internal/domain/leave"
	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/bittarwork/altrohr-payroll/internal/repository/postgresql"
)

type ServiceImpl struct {
	db            *database.DB
	attendanceSvc attendance.Service
	leaveSvc      leave.Service
	planRepo      compensation.PlanRepository
	statementRepo payroll.StatementRepository
	employeeRepo  employee.Repository
}

func NewPayrollService(
	db *database.DB,
	attendanceSvc attendance.Service,
	leaveSvc leave.Service,
	planRepo compensation.PlanRepository,
	statementRepo payroll.StatementRepository,
	employeeRepo employee.Repository,
) *ServiceImpl {
	return &ServiceImpl{
		db:            db,
		attendanceSvc: attendanceSvc,
		leaveSvc:      leaveSvc,
		planRepo:      planRepo,
		statementRepo: statementRepo,
		employeeRepo:  employeeRepo,
	}
}

// ComputeStatement fetches the month's inputs and runs the pure calculator.
// The statement comes back with its inputs hash set but is not persisted.
func (s *ServiceImpl) ComputeStatement(ctx context.Context, employeeID string, month payroll.Month) (payroll.Statement, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.Statement{}, payroll.ErrUnknownEmployee
	}

	from, to := month.Start(), month.End()

	events, err := s.attendanceSvc.EventsForRange(ctx, employeeID, from.AddDate(0, 0, -1), to)
	if err != nil {
		return payroll.Statement{}, fmt.Errorf("failed to fetch attendance events: %w", err)
	}
	sessions, anomalies := attendance.BuildSessions(events)
	sessions = attendance.ClipSessions(sessions, from, to)

	leaveDays, err := s.leaveSvc.ApprovedDaysForRange(ctx, employeeID, from, to)
	if err != nil {
		return payroll.Statement{}, fmt.Errorf("failed to fetch approved leave days: %w", err)
	}

	plans, err := s.planRepo.HistoryForEmployee(ctx, employeeID)
	if err != nil {
		return payroll.Statement{}, fmt.Errorf("failed to fetch compensation plans: %w", err)
	}

	st, err := Compute(employeeID, month, Inputs{
		Sessions:  sessions,
		Anomalies: anomalies,
		LeaveDays: leaveDays,
		Plans:     plans,
	})
	if err != nil {
		return payroll.Statement{}, err
	}

	st.InputsHash = fingerprintInputs(employeeID, month, events, leaveDays, plans)
	return st, nil
}

// PersistComputed stores a computed statement as a new version, unless a
// statement with the same inputs hash already exists, in which case that one
// is returned untouched. Honors a surrounding transaction via ctx.
func (s *ServiceImpl) PersistComputed(ctx context.Context, st payroll.Statement) (payroll.Statement, error) {
	existing, err := s.statementRepo.GetByInputsHash(ctx, st.EmployeeID, st.Month, st.InputsHash)
	if err == nil {
		return existing, nil
	}
	if err != payroll.ErrStatementNotFound {
		return payroll.Statement{}, err
	}

	version, err := s.statementRepo.LatestVersion(ctx, st.EmployeeID, st.Month)
	if err != nil {
		return payroll.Statement{}, err
	}
	st.Version = version + 1

	return s.statementRepo.Create(ctx, st)
}

func (s *ServiceImpl) GenerateStatement(ctx context.Context, employeeID string, month payroll.Month) (payroll.Statement, error) {
	computed, err := s.ComputeStatement(ctx, employeeID, month)
	if err != nil {
		return payroll.Statement{}, err
	}

	var persisted payroll.Statement
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var txErr error
		persisted, txErr = s.PersistComputed(txCtx, computed)
		return txErr
	})
	if err != nil {
		return payroll.Statement{}, err
	}

	slog.Info("salary statement generated",
		"employee_id", employeeID, "month", month.String(),
		"version", persisted.Version, "gross", persisted.GrossPay.StringFixed(2))
	return persisted, nil
}

func (s *ServiceImpl) StatementsForEmployee(ctx context.Context, employeeID string) ([]payroll.Statement, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, payroll.ErrUnknownEmployee
	}
	return s.statementRepo.ListForEmployee(ctx, employeeID)
}

// fingerprintInputs hashes the identity of every record the computation
// consulted. Unchanged inputs therefore hash to the already persisted
// statement, which is what makes regeneration idempotent.
func fingerprintInputs(
	employeeID string,
	month payroll.Month,
	events []attendance.Event,
	leaveDays map[time.Time]leave.Day,
	plans []compensation.Plan,
) string {
	type fingerprint struct {
		EmployeeID string   `json:"employeeId"`
		Month      string   `json:"month"`
		EventIDs   []string `json:"eventIds"`
		LeaveDays  []string `json:"leaveDays"`
		Plans      []string `json:"plans"`
	}

	fp := fingerprint{
		EmployeeID: employeeID,
		Month:      month.String(),
		EventIDs:   make([]string, 0, len(events)),
		LeaveDays:  make([]string, 0, len(leaveDays)),
		Plans:      make([]string, 0, len(plans)),
	}
	for _, ev := range events {
		fp.EventIDs = append(fp.EventIDs, ev.ID)
	}
	for day, ld := range leaveDays {
		fp.LeaveDays = append(fp.LeaveDays, fmt.Sprintf("%s:%s:%t", day.Format("2006-01-02"), ld.Type, ld.Paid))
	}
	for _, p := range plans {
		fp.Plans = append(fp.Plans, fmt.Sprintf("%s:%s", p.ID, p.EffectiveFrom.Format("2006-01-02")))
	}
	sort.Strings(fp.EventIDs)
	sort.Strings(fp.LeaveDays)
	sort.Strings(fp.Plans)

	raw, _ := json.Marshal(fp)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
