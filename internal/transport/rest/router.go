package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/expense-tracking/internal/auth"
	"github.com/frahmantamala/expense-tracking/internal/category"
	"github.com/frahmantamala/expense-tracking/internal/contact"
	"github.com/frahmantamala/expense-tracking/internal/department"
	"github.com/frahmantamala/expense-tracking/internal/employee"
	"github.com/frahmantamala/expense-tracking/internal/expense"
	"github.com/frahmantamala/expense-tracking/internal/expensefile"
	"github.com/frahmantamala/expense-tracking/internal/payment"
	"github.com/frahmantamala/expense-tracking/internal/paymentmethod"
	"github.com/frahmantamala/expense-tracking/internal/report"
	"github.com/frahmantamala/expense-tracking/internal/transport/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth          *auth.Handler
	Expense       *expense.Handler
	ExpenseFile   *expensefile.Handler
	Payment       *payment.Handler
	Category      *category.Handler
	PaymentMethod *paymentmethod.Handler
	Department    *department.Handler
	Contact       *contact.Handler
	Employee      *employee.Handler
	Report        *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expense.Create)
				er.Get("/", h.Expense.ListMine)
				er.Get("/{id}", h.Expense.Get)
				er.Put("/{id}", h.Expense.Update)
				er.Delete("/{id}", h.Expense.Delete)

				er.Post("/{id}/files", h.ExpenseFile.Upload)
				er.Get("/{id}/files", h.ExpenseFile.ListByExpense)

				er.Group(func(mr chi.Router) {
					mr.Use(h.Auth.RequireManager)
					mr.Get("/all", h.Expense.ListAll)
					mr.Post("/{id}/approve", h.Expense.Approve)
					mr.Post("/{id}/reject", h.Expense.Reject)
					mr.Post("/{id}/retry-payment", h.Expense.RetryPayment)
					mr.Get("/{id}/payments", h.Payment.History)
				})
			})

			pr.Route("/expense-files", func(fr chi.Router) {
				fr.Get("/{id}", h.ExpenseFile.Download)
				fr.Put("/{id}", h.ExpenseFile.Update)
				fr.Delete("/{id}", h.ExpenseFile.Delete)
			})

			pr.Route("/addresses", func(ar chi.Router) {
				ar.Post("/", h.Contact.CreateAddress)
				ar.Put("/{id}", h.Contact.UpdateAddress)
				ar.Delete("/{id}", h.Contact.DeleteAddress)
			})

			pr.Route("/phones", func(phr chi.Router) {
				phr.Post("/", h.Contact.CreatePhone)
				phr.Put("/{id}", h.Contact.UpdatePhone)
				phr.Delete("/{id}", h.Contact.DeletePhone)
			})

			pr.Get("/categories", h.Category.List)
			pr.Get("/categories/{id}", h.Category.Get)
			pr.Get("/payment-methods", h.PaymentMethod.List)
			pr.Get("/departments", h.Department.List)

			pr.Get("/reports/me", h.Report.Me)

			pr.Group(func(mr chi.Router) {
				mr.Use(h.Auth.RequireManager)

				mr.Post("/categories", h.Category.Create)
				mr.Put("/categories/{id}", h.Category.Update)
				mr.Delete("/categories/{id}", h.Category.Delete)

				mr.Post("/payment-methods", h.PaymentMethod.Create)
				mr.Put("/payment-methods/{id}", h.PaymentMethod.Update)
				mr.Delete("/payment-methods/{id}", h.PaymentMethod.Delete)

				mr.Post("/departments", h.Department.Create)
				mr.Put("/departments/{id}", h.Department.Update)
				mr.Delete("/departments/{id}", h.Department.Delete)

				mr.Route("/employees", func(empr chi.Router) {
					empr.Get("/", h.Employee.List)
					empr.Get("/{id}", h.Employee.Get)
					empr.Post("/", h.Employee.Create)
					empr.Put("/{id}", h.Employee.Update)
					empr.Delete("/{id}", h.Employee.Delete)
				})

				mr.Get("/reports/company", h.Report.Company)
				mr.Get("/reports/employees/{id}", h.Report.Employee)
			})
		})
	})
}
