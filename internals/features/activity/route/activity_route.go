package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/activity/controller"
)

func ActivityRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewActivityController(db)

	activities := api.Group("/activities")
	activities.Get("/", ctl.List)
}
