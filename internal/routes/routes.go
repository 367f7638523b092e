package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Shubham-7300/Portfolio-Backend/internal/handlers"
	"github.com/Shubham-7300/Portfolio-Backend/internal/middleware"
)

// SetupRoutes wires the API. Mutating portfolio-content routes sit behind the
// authentication gate; reads and the contact form are public.
func SetupRoutes(r *chi.Mux, h *handlers.Handler) {
	gate := &middleware.Authenticator{Tokens: h.Tokens, Users: h.Users}

	r.Route("/api/v1/user", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/portfolio/me", h.GetUserForPortfolio)
		r.Post("/password/forgot", h.ForgotPassword)
		r.Put("/password/reset/{token}", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Get("/logout", h.Logout)
			r.Get("/me", h.GetUser)
			r.Put("/update/me", h.UpdateProfile)
			r.Put("/update/password", h.UpdatePassword)
		})
	})

	r.Route("/api/v1/skill", func(r chi.Router) {
		r.Get("/getall", h.GetAllSkills)
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Post("/add", h.AddSkill)
			r.Put("/update/{id}", h.UpdateSkill)
			r.Delete("/delete/{id}", h.DeleteSkill)
		})
	})

	r.Route("/api/v1/project", func(r chi.Router) {
		r.Get("/getall", h.GetAllProjects)
		r.Get("/get/{id}", h.GetProject)
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Post("/add", h.AddProject)
			r.Put("/update/{id}", h.UpdateProject)
			r.Delete("/delete/{id}", h.DeleteProject)
		})
	})

	r.Route("/api/v1/timeline", func(r chi.Router) {
		r.Get("/getall", h.GetAllTimelines)
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Post("/add", h.AddTimeline)
			r.Delete("/delete/{id}", h.DeleteTimeline)
		})
	})

	r.Route("/api/v1/message", func(r chi.Router) {
		r.Post("/send", h.SendMessage)
		r.Get("/getall", h.GetAllMessages)
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Delete("/delete/{id}", h.DeleteMessage)
		})
	})

	r.Route("/api/v1/softwareapplication", func(r chi.Router) {
		r.Get("/getall", h.GetAllApplications)
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Post("/add", h.AddApplication)
			r.Delete("/delete/{id}", h.DeleteApplication)
		})
	})
}
