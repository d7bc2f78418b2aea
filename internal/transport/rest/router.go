package rest

import (
	"log/slog"
	"net/http"

	"github.com/declarafacil/fiscal-tracker/internal/auth"
	"github.com/declarafacil/fiscal-tracker/internal/category"
	"github.com/declarafacil/fiscal-tracker/internal/dashboard"
	"github.com/declarafacil/fiscal-tracker/internal/docvalidation"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"github.com/declarafacil/fiscal-tracker/internal/fiscalrule"
	"github.com/declarafacil/fiscal-tracker/internal/summary"
	"github.com/declarafacil/fiscal-tracker/internal/transport/middleware"
	"github.com/declarafacil/fiscal-tracker/internal/transport/swagger"
	"github.com/declarafacil/fiscal-tracker/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *auth.Handler
	User          *user.Handler
	Category      *category.Handler
	FiscalRule    *fiscalrule.Handler
	Expense       *expense.Handler
	DocValidation *docvalidation.Handler
	Summary       *summary.Handler
	Dashboard     *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, monitor *Monitor, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(monitor)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Self registration is open; everything else on /users requires auth.
		r.Post("/users", h.User.Register)

		// Category catalog is public read
		r.Get("/categories", h.Category.GetCategories)
		r.Get("/categories/{id}", h.Category.GetCategory)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)
			pr.Put("/users/me", h.User.UpdateCurrentUser)
			pr.Delete("/users/me", h.User.DeleteCurrentUser)
			pr.Get("/users/{id}", h.User.GetUser)
			pr.Put("/users/{id}", h.User.UpdateUser)
			pr.Delete("/users/{id}", h.User.DeleteUser)

			pr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)
				ar.Get("/users", h.User.GetUsers)

				ar.Post("/categories", h.Category.CreateCategory)
				ar.Put("/categories/{id}", h.Category.UpdateCategory)
				ar.Delete("/categories/{id}", h.Category.DeleteCategory)

				ar.Post("/fiscal-rules", h.FiscalRule.CreateRule)
				ar.Put("/fiscal-rules/{id}", h.FiscalRule.UpdateRule)
				ar.Delete("/fiscal-rules/{id}", h.FiscalRule.DeleteRule)
			})

			pr.Get("/fiscal-rules", h.FiscalRule.GetRules)
			pr.Get("/fiscal-rules/with-categories", h.FiscalRule.GetCategoriesWithLimits)
			pr.Get("/fiscal-rules/{id}", h.FiscalRule.GetRule)

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expense.CreateExpense)
				er.Get("/", h.Expense.GetUserExpenses)
				er.Get("/with-categories", h.Expense.GetExpensesWithCategory)
				er.Get("/deductible", h.Expense.GetDeductibleExpenses)
				er.Get("/{id}", h.Expense.GetExpense)
				er.Put("/{id}", h.Expense.UpdateExpense)
				er.Delete("/{id}", h.Expense.DeleteExpense)
			})

			pr.Route("/document-validations", func(dr chi.Router) {
				dr.Post("/", h.DocValidation.CreateValidation)
				dr.Get("/", h.DocValidation.GetValidations)
				dr.Get("/by-expense", h.DocValidation.GetValidation)
				dr.Put("/by-expense", h.DocValidation.UpdateValidation)
				dr.Delete("/by-expense", h.DocValidation.DeleteValidation)
			})

			pr.Get("/tax-summary", h.Summary.GetTaxSummary)
			pr.Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})
}
