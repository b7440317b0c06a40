package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/cases/controller"
	"maktabi_backend/internals/helpers/storage"
	"maktabi_backend/internals/middlewares"
)

func CaseRoutes(api fiber.Router, db *gorm.DB, st *storage.Client) {
	caseCtl := controller.NewCaseController(db)
	partyCtl := controller.NewCasePartyController(db)
	docCtl := controller.NewCaseDocumentController(db, st)
	eventCtl := controller.NewCaseEventController(db)

	cases := api.Group("/cases")
	cases.Get("/", caseCtl.List)
	cases.Post("/", caseCtl.Create)
	cases.Get("/:id", caseCtl.GetByID)
	cases.Put("/:id", caseCtl.Update)
	cases.Delete("/:id", caseCtl.Delete)

	cases.Get("/:caseId/parties", partyCtl.ListByCase)
	cases.Get("/:caseId/documents", docCtl.ListByCase)
	cases.Post("/:caseId/documents", middlewares.UploadRateLimiter(), docCtl.Upload)
	cases.Get("/:caseId/events", eventCtl.ListByCase)

	parties := api.Group("/case-parties")
	parties.Post("/", partyCtl.Create)
	parties.Put("/:id", partyCtl.Update)
	parties.Delete("/:id", partyCtl.Delete)

	documents := api.Group("/case-documents")
	documents.Put("/:id", docCtl.Update)
	documents.Delete("/:id", docCtl.Delete)

	events := api.Group("/case-events")
	events.Post("/", eventCtl.Create)
	events.Put("/:id", eventCtl.Update)
	events.Delete("/:id", eventCtl.Delete)
}
