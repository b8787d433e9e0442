package http

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/adapters/http/middleware"
	"notekeeper/internal/app"
	"notekeeper/internal/ports/cache"
	svc "notekeeper/internal/ports/services"
)

// SetupRouter wires the HTTP routes.
func SetupRouter(
	fiberApp *fiber.App,
	accounts *app.AccountUseCase,
	notes *app.NoteUseCase,
	tokenSvc svc.TokenService,
	listCache cache.Cache,
) {
	userHandler := NewUserHandler(accounts, tokenSvc)
	noteHandler := NewNoteHandler(notes, listCache)

	fiberApp.Use(middleware.NewLoggerMiddleware())

	apiV1 := fiberApp.Group("/api/v1")

	// Public routes. Registration also accepts an optional bearer token so
	// the bootstrap actor can mint super_admin accounts.
	apiV1.Post("/login", userHandler.Login)
	apiV1.Post("/user", middleware.NewOptionalAuthMiddleware(tokenSvc), userHandler.Register)
	apiV1.Get("/user/:email", userHandler.FindUser)

	// Protected account routes.
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))
	userRoutes.Put("/password", userHandler.ChangePassword)
	userRoutes.Delete("/:email", userHandler.DeleteUser)

	// Protected note routes.
	noteRoutes := apiV1.Group("/notes")
	noteRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))
	noteRoutes.Post("/", noteHandler.CreateNote)
	noteRoutes.Get("/", noteHandler.ListNotes)
	noteRoutes.Put("/", noteHandler.UpdateNote)
	noteRoutes.Delete("/:title", noteHandler.DeleteNote)

	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found",
		})
	})
}
