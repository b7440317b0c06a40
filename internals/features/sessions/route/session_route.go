package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/sessions/controller"
)

func SessionRoutes(api fiber.Router, db *gorm.DB, loc *time.Location) {
	ctl := controller.NewSessionController(db, loc)

	sessions := api.Group("/sessions")
	sessions.Get("/upcoming", ctl.ListUpcoming)
	sessions.Post("/", ctl.Create)
	sessions.Put("/:id", ctl.Update)
	sessions.Delete("/:id", ctl.Delete)

	api.Get("/cases/:caseId/sessions", ctl.ListByCase)
}
