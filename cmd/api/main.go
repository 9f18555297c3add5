package main

import (
	"fmt"
	"net/http"

	"github.com/bittarwork/altrohr-payroll/internal/config"
	appHTTP "github.com/bittarwork/altrohr-payroll/internal/handler/http"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/jwt"
	"github.com/bittarwork/altrohr-payroll/internal/repository/postgresql"
	attendanceService "github.com/bittarwork/altrohr-payroll/internal/service/attendance"
	compensationService "github.com/bittarwork/altrohr-payroll/internal/service/compensation"
	leaveService "github.com/bittarwork/altrohr-payroll/internal/service/leave"
	payrollService "github.com/bittarwork/altrohr-payroll/internal/service/payroll"
	reportService "github.com/bittarwork/altrohr-payroll/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceEventRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	planRepo := postgresql.NewCompensationPlanRepository(db)
	statementRepo := postgresql.NewStatementRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, cfg.Engine.LeaveCancelCutoffDays)
	compensationSvc := compensationService.NewCompensationService(planRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		attendanceSvc,
		leaveSvc,
		planRepo,
		statementRepo,
		employeeRepo,
	)
	reportSvc := reportService.NewReportService(
		db,
		reportRepo,
		employeeRepo,
		payrollSvc,
		cfg.Engine.ReportWorkers,
		cfg.Engine.StoreRetryAttempts,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	compensationHandler := appHTTP.NewCompensationHandler(compensationSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		leaveHandler,
		compensationHandler,
		payrollHandler,
		reportHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
