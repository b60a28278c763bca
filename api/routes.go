package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public site, the public API and the admin API
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/api", func(r chi.Router) {
			r.Get("/health", handlers.healthHandler.health())

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", handlers.projectHandler.getAllProjects())
				r.Get("/{projectID}", handlers.projectHandler.getProject())

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.authenticateContent)
					r.Post("/", handlers.projectHandler.createProject())
					r.Put("/{projectID}", handlers.projectHandler.updateProject())
					r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
				})
			})

			r.Route("/presentations", func(r chi.Router) {
				r.Get("/", handlers.presentationHandler.getAllPresentations())
				r.Get("/categories", handlers.presentationHandler.getCategories())
				r.Get("/{presentationID}", handlers.presentationHandler.getPresentation())
				r.Post("/{presentationID}/demo-request", handlers.presentationHandler.requestDemo())

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.authenticateContent)
					r.Post("/", handlers.presentationHandler.createPresentation())
					r.Put("/{presentationID}", handlers.presentationHandler.updatePresentation())
					r.Delete("/{presentationID}", handlers.presentationHandler.deletePresentation())
				})
			})

			r.Post("/contact", handlers.leadHandler.submitContact())

			r.Route("/admin", func(r chi.Router) {
				r.Post("/login", handlers.adminHandler.login())

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.authenticate)
					r.Get("/stats", handlers.adminHandler.getStats())
					r.Get("/leads", handlers.leadHandler.getAllLeads())
					r.Get("/leads/export", handlers.leadHandler.exportLeads())
					r.Put("/leads/{leadID}", handlers.leadHandler.updateLeadStatus())
					r.Delete("/leads/{leadID}", handlers.leadHandler.deleteLead())
				})
			})
		})

		r.Get("/assets/presentations/{fileName}", handlers.presentationHandler.serveFile())

		for route, file := range pages {
			r.Get(route, handlers.pageHandler.page(file))
		}
	})

	r.NotFound(handlers.pageHandler.fallback())
}
