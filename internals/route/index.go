package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityRoute "maktabi_backend/internals/features/activity/route"
	billingRoute "maktabi_backend/internals/features/billing/route"
	caseRoute "maktabi_backend/internals/features/cases/route"
	clientRoute "maktabi_backend/internals/features/clients/route"
	courtRoute "maktabi_backend/internals/features/courts/route"
	sessionRoute "maktabi_backend/internals/features/sessions/route"
	"maktabi_backend/internals/helpers/storage"
	authMiddleware "maktabi_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every feature under /api behind the JWT middleware.
// Only the payment notification callback is exempt (checked inside the
// middleware itself).
func SetupRoutes(app *fiber.App, db *gorm.DB, st *storage.Client, loc *time.Location) {
	api := app.Group("/api", authMiddleware.AuthMiddleware())

	clientRoute.ClientRoutes(api, db, st)
	courtRoute.CourtRoutes(api, db)
	caseRoute.CaseRoutes(api, db, st)
	sessionRoute.SessionRoutes(api, db, loc)
	billingRoute.BillingRoutes(api, db, st, loc)
	activityRoute.ActivityRoutes(api, db)
}
