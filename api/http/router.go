package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IllyaHavrulyk/DevConnector/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	profile *handlers.ProfileHandler,
	posts *handlers.PostHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	api.Post("/users", auth.Register)
	api.Get("/auth", authMW, auth.Me)
	api.Post("/auth", auth.Login)

	pr := api.Group("/profile")
	pr.Get("/", profile.List)
	pr.Post("/", authMW, profile.Upsert)
	pr.Delete("/", authMW, profile.DeleteAccount)
	pr.Get("/me", authMW, profile.Me)
	pr.Get("/user/:user_id", profile.GetByUser)
	pr.Put("/experience", authMW, profile.AddExperience)
	pr.Delete("/experience/:exp_id", authMW, profile.RemoveExperience)
	pr.Put("/education", authMW, profile.AddEducation)
	pr.Delete("/education/:edu_id", authMW, profile.RemoveEducation)
	pr.Get("/github/:username", profile.GitHubRepos)

	// Every post route requires a token, reads included.
	po := api.Group("/posts", authMW)
	po.Post("/", posts.Create)
	po.Get("/", posts.List)
	po.Get("/:id", posts.Get)
	po.Delete("/:id", posts.Delete)
	po.Put("/like/:id", posts.Like)
	po.Put("/unlike/:id", posts.Unlike)
	po.Put("/comment/:id", posts.AddComment)
	po.Delete("/comment/:id/:comment_id", posts.RemoveComment)
}
