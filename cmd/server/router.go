package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/devlink-api/internal/api"
	apiMiddleware "github.com/phrazzld/devlink-api/internal/api/middleware"
	"github.com/phrazzld/devlink-api/internal/platform/metrics"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Metrics)

	users := api.NewUserHandler(app.userService)
	profiles := api.NewProfileHandler(app.profileService, app.userService)
	posts := api.NewPostHandler(app.postService)

	authenticate := apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate
	rateLimit := apiMiddleware.RateLimit(app.limiter)

	r.Route("/users", func(r chi.Router) {
		r.With(rateLimit).Post("/register", users.Register)
		r.With(rateLimit).Post("/login", users.Login)
		r.With(authenticate).Get("/me", users.Me)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", profiles.List)
		r.Get("/handle/{handle}", profiles.GetByHandle)
		r.Get("/{user_id}", profiles.GetByUser)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", profiles.Create)
			r.Put("/", profiles.Update)
			r.Delete("/", profiles.Delete)
			r.Get("/me", profiles.Me)
			r.Post("/experience", profiles.AddExperience)
			r.Delete("/experience/{exp_id}", profiles.RemoveExperience)
			r.Post("/education", profiles.AddEducation)
			r.Delete("/education/{edu_id}", profiles.RemoveEducation)
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Get("/{id}", posts.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", posts.Create)
			r.Delete("/{id}", posts.Delete)
			r.Post("/likes/{post_id}", posts.Like)
			r.Delete("/likes/{post_id}", posts.Unlike)
			r.Post("/comment/{post_id}", posts.Comment)
			r.Delete("/comment/{post_id}/{comment_id}", posts.DeleteComment)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", metrics.Handler())

	return r
}
