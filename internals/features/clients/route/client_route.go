package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/clients/controller"
	"maktabi_backend/internals/helpers/storage"
	"maktabi_backend/internals/middlewares"
)

func ClientRoutes(api fiber.Router, db *gorm.DB, st *storage.Client) {
	ctl := controller.NewClientController(db, st)

	clients := api.Group("/clients")
	clients.Get("/", ctl.List)
	clients.Post("/", ctl.Create)
	clients.Get("/:id", ctl.GetByID)
	clients.Put("/:id", ctl.Update)
	clients.Delete("/:id", ctl.Delete)
	clients.Post("/:id/photo", middlewares.UploadRateLimiter(), ctl.UploadPhoto)
}
