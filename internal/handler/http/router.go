package http

import (
	"log/slog"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	WorkEntry  WorkEntryHandler
	Leave      LeaveHandler
	Employee   EmployeeHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.EmployeeRequired)
				r.Post("/open", h.Attendance.Open)
				r.Post("/close", h.Attendance.Close)
				r.Get("/open", h.Attendance.GetOpen)
			})
			r.Get("/{id}", h.Attendance.Get)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Attendance.List)
			})
		})

		r.Route("/work-entries", func(r chi.Router) {
			r.With(middleware.EmployeeRequired).Post("/", h.WorkEntry.Submit)
			r.Get("/", h.WorkEntry.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.WorkEntry.Get)
				r.Put("/", h.WorkEntry.Update)
				r.Delete("/", h.WorkEntry.Delete)
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.EmployeeRequired)
				r.Post("/apply", h.Leave.Apply)
				r.Get("/balances", h.Leave.MyBalances)
				r.Get("/records", h.Leave.MyRecords)
				r.Get("/status", h.Leave.Status)
			})

			// Admin only
			r.With(middleware.AdminOnly).Post("/balances/adjust", h.Leave.AdjustBalance)
		})

		// Admin only
		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Post("/", h.Employee.CreateEmployee)
			r.Get("/", h.Employee.ListEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.GetEmployee)
				r.Post("/suspend", h.Employee.SuspendEmployee)
				r.Post("/reactivate", h.Employee.ReactivateEmployee)
				r.Get("/leave/balances", h.Leave.EmployeeBalances)
			})
		})
	})
	return r
}
