// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// site server. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"brsite/internal/handlers"
	"brsite/internal/metrics"
	"brsite/internal/middleware"
	"brsite/internal/session"
)

// Deps holds everything the router wires into routes.
type Deps struct {
	// Sessions may be nil when Valkey is unavailable; the admin area then
	// rejects every request as unauthenticated.
	Sessions *session.Store
	Admin    *handlers.Admin
	Auth     *handlers.Auth
	Public   *handlers.Public

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// LoginLimiter throttles POST /admin/login when set.
	LoginLimiter *middleware.RateLimiter

	// SecureCookies marks the CSRF cookie Secure.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(metrics.Middleware)
	if d.Sessions != nil {
		r.Use(middleware.LoadSession(d.Sessions))
	}

	// Health check and metrics: no auth, no CSRF.
	r.Get("/health", d.Public.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	// Public read API used by the site pages.
	r.Route("/api", func(r chi.Router) {
		r.Get("/content", d.Public.Content)
		r.Get("/properties", d.Public.Properties)
		r.Get("/properties/{id}", d.Public.Property)
		r.Get("/projects", d.Public.Projects)
	})

	// Admin routes: CSRF protection on everything, authentication below.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(d.SecureCookies))

		r.Get("/csrf", csrfToken)
		r.Group(func(r chi.Router) {
			if d.LoginLimiter != nil {
				r.Use(d.LoginLimiter.Middleware)
			}
			r.Post("/login", d.Auth.Login)
		})
		r.Post("/logout", d.Auth.Logout)

		// 2FA: requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", d.Auth.TwoFASetup)
			r.Post("/2fa/verify", d.Auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified admin API.
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/me", d.Auth.Me)
			r.Get("/state", d.Admin.State)
			r.Post("/reload", d.Admin.Reload)

			// Content document
			r.Route("/content", func(r chi.Router) {
				r.Put("/", d.Admin.ReplaceContent)
				r.Patch("/section", d.Admin.UpdateSection)
				r.Patch("/nested", d.Admin.UpdateNested)
				r.Patch("/deep-nested", d.Admin.UpdateDeepNested)
				r.Patch("/array-item", d.Admin.UpdateArrayItem)
				r.Patch("/path", d.Admin.UpdatePath)
			})

			// Revisions
			r.Get("/revisions", d.Admin.Revisions)
			r.Post("/revisions/{id}/restore", d.Admin.RestoreRevision)

			// Properties
			r.Route("/properties", func(r chi.Router) {
				r.Post("/", d.Admin.PropertyCreate)
				r.Patch("/{id}", d.Admin.PropertyUpdate)
				r.Delete("/{id}", d.Admin.PropertyDelete)
			})

			// Construction projects
			r.Route("/projects", func(r chi.Router) {
				r.Post("/", d.Admin.ProjectCreate)
				r.Patch("/{id}", d.Admin.ProjectUpdate)
				r.Delete("/{id}", d.Admin.ProjectDelete)
			})

			// Media
			r.Post("/media/{bucket}", d.Admin.MediaUpload)

			// Response cache: admin only
			r.Route("/cache", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/clear", d.Admin.CacheClear)
				r.Get("/log", d.Admin.CacheLog)
			})
		})
	})

	return r
}

// csrfToken returns the CSRF token for clients that cannot read the cookie.
func csrfToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": middleware.CSRFTokenFromCtx(r.Context())})
}
