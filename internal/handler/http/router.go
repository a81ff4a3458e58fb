package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	attendanceHandler AttendanceHandler,
	syncHandler SyncHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "veritime-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/reconcile", attendanceHandler.Reconcile)
			r.Post("/reprocess", attendanceHandler.Reprocess)
			r.Post("/manual", attendanceHandler.AddManualScan)
			r.Get("/scans", attendanceHandler.ListScans)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/", syncHandler.Trigger)
			r.Get("/status", syncHandler.Status)
			r.Route("/failures", func(r chi.Router) {
				r.Get("/", syncHandler.ListFailures)
				r.Put("/{id}/resolve", syncHandler.ResolveFailure)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", reportHandler.Summary)
			r.Get("/team-summary", reportHandler.TeamSummary)
			r.Get("/calendar", reportHandler.Calendar)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Get("/unread-count", notificationHandler.UnreadCount)
			r.Post("/mark-read", notificationHandler.MarkAsRead)
			r.Post("/mark-all-read", notificationHandler.MarkAllAsRead)
			r.Get("/stream", notificationHandler.Stream)
		})
	})

	return r
}
