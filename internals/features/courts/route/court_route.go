package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/courts/controller"
)

func CourtRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourtController(db)

	courts := api.Group("/courts")
	courts.Get("/", ctl.List)
	courts.Post("/", ctl.Create)
	courts.Get("/:id", ctl.GetByID)
	courts.Put("/:id", ctl.Update)
	courts.Delete("/:id", ctl.Delete)
}
