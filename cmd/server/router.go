package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/carecamp/carecamp-api/internal/api"
	apiMiddleware "github.com/carecamp/carecamp-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         300,
	}))

	authHandler := api.NewAuthHandler(app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userStore, app.logger)
	campHandler := api.NewCampHandler(app.campStore, app.logger)
	registrationHandler := api.NewRegistrationHandler(app.registrationStore, app.logger)
	feedbackHandler := api.NewFeedbackHandler(app.feedbackStore, app.logger)
	paymentHandler := api.NewPaymentHandler(app.payments, app.logger)
	healthHandler := api.NewHealthHandler(app.pinger, app.logger)

	adminVerifier := app.adminVerifier
	if adminVerifier == nil {
		adminVerifier = app.verifier
	}
	authenticate := apiMiddleware.NewAuthMiddleware(app.verifier).Authenticate
	authenticateAdmin := apiMiddleware.NewAuthMiddleware(adminVerifier).Authenticate
	requireAdmin := apiMiddleware.NewRoleGate(app.userStore).RequireAdmin

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Post("/jwt", authHandler.IssueToken)

	// Users
	r.Post("/users", userHandler.CreateUser)
	r.With(authenticate).Get("/users", userHandler.GetCurrentUser)
	r.With(authenticate).Patch("/users/participants-profile", userHandler.UpdateProfile)
	r.With(authenticateAdmin, requireAdmin).Get("/all-users", userHandler.ListUsers)

	// Camps
	r.Route("/camps", func(r chi.Router) {
		r.Post("/", campHandler.CreateCamp)
		r.Get("/", campHandler.SearchCamps)
		r.Get("/{id}", campHandler.GetCamp)
		r.Patch("/{id}", campHandler.UpdateCamp)
		r.Patch("/{id}/increment-participants", campHandler.IncrementParticipants)
		r.Delete("/{id}", campHandler.DeleteCamp)
	})
	r.Get("/popular-camps", campHandler.PopularCamps)

	// Registrations
	r.Post("/registered-participant", registrationHandler.CreateRegistration)
	r.With(authenticate).Get("/registered-participant", registrationHandler.ListMyRegistrations)
	r.With(authenticateAdmin, requireAdmin).Get("/all-registered-participant", registrationHandler.ListRegistrations)
	r.Patch("/update-payment-status/{campId}", registrationHandler.MarkPaid)
	r.Patch("/confirm-participant/{id}", registrationHandler.ConfirmRegistration)
	r.With(authenticateAdmin, requireAdmin).Delete("/delete-registration/{id}", registrationHandler.DeleteRegistration)
	r.Delete("/cancel-registration-user/{id}", registrationHandler.CancelRegistration)

	// Payments
	r.Post("/create-payment-session", paymentHandler.CreateSession)
	r.Get("/session-details/{sessionId}", paymentHandler.GetSession)

	// Feedback
	r.Post("/feedback", feedbackHandler.CreateFeedback)
	r.Get("/feedback", feedbackHandler.ListFeedback)

	return r
}
