package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/veritime/attendance-backend-go/internal/config"
	appHTTP "github.com/veritime/attendance-backend-go/internal/handler/http"
	"github.com/veritime/attendance-backend-go/internal/pkg/cron"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
	"github.com/veritime/attendance-backend-go/internal/pkg/device"
	"github.com/veritime/attendance-backend-go/internal/pkg/email"
	"github.com/veritime/attendance-backend-go/internal/pkg/sse"
	"github.com/veritime/attendance-backend-go/internal/repository/postgresql"
	"github.com/veritime/attendance-backend-go/internal/service/devicesync"
	notificationService "github.com/veritime/attendance-backend-go/internal/service/notification"
	reconcileService "github.com/veritime/attendance-backend-go/internal/service/reconcile"
	reportService "github.com/veritime/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	scanRepo := postgresql.NewScanRepository(db)
	recordRepo := postgresql.NewDailyAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	permissionRepo := postgresql.NewPermissionRequestRepository(db)
	holidayRepo := postgresql.NewPaidHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	failureRepo := postgresql.NewSyncFailureRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notifService.Stop()

	emailService := email.NewService(cfg.SMTP)

	reconciler := reconcileService.NewService(db, scanRepo, recordRepo, leaveRepo, permissionRepo, employeeRepo)

	var deviceClient device.Client
	if cfg.Device.Address != "" {
		deviceClient = device.NewHTTPClient(cfg.Device.Address, cfg.Device.Timeout)
	}

	alerter := devicesync.NewAlerter(employeeRepo, notifService, emailService, cfg.SMTP.AdminEmails)
	orchestrator := devicesync.NewOrchestrator(
		deviceClient,
		cfg.Sync.BatchSize,
		scanRepo,
		employeeRepo,
		failureRepo,
		reconciler,
		alerter,
	)

	var syncTrigger reportService.SyncTrigger
	if cfg.Sync.AutoTrigger {
		syncTrigger = orchestrator.TriggerAsync
	}
	reportSvc := reportService.NewService(recordRepo, leaveRepo, permissionRepo, holidayRepo, employeeRepo, syncTrigger)

	attendanceHandler := appHTTP.NewAttendanceHandler(reconciler)
	syncHandler := appHTTP.NewSyncHandler(orchestrator, failureRepo)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService)

	router := appHTTP.NewRouter(attendanceHandler, syncHandler, reportHandler, notificationHandler)

	scheduler := cron.NewScheduler()
	syncJobs := cron.NewSyncJobs(orchestrator, reconciler, employeeRepo)
	syncJobs.RegisterJobs(scheduler, cfg.Sync.PollInterval, cfg.Sync.AutoTrigger)
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "addr", addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	if err := server.Close(); err != nil {
		slog.Error("Server close failed", "error", err)
	}
}
