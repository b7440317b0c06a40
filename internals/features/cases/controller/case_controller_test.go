// file: internals/features/cases/controller/case_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityModel "maktabi_backend/internals/features/activity/model"
	caseModel "maktabi_backend/internals/features/cases/model"
	caseRoute "maktabi_backend/internals/features/cases/route"
	clientModel "maktabi_backend/internals/features/clients/model"
	helper "maktabi_backend/internals/helpers"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&clientModel.Client{},
		&caseModel.Case{},
		&caseModel.CaseParty{},
		&caseModel.CaseDocument{},
		&caseModel.CaseEvent{},
		&activityModel.Activity{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		c.Locals("user_name", "محامي الاختبار")
		return c.Next()
	})
	api := app.Group("/api")
	caseRoute.CaseRoutes(api, db, nil)
	return app
}

func seedClient(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	client := clientModel.Client{ClientFirstName: "عبدالله"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client.ClientID
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, []byte) {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func TestCreateCaseWithNestedChildren(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	clientID := seedClient(t, db)

	status, body := doJSON(t, app, "POST", "/api/cases", fiber.Map{
		"case_title":     "دعوى إخلاء عقار",
		"case_number":    "1447/321",
		"case_type":      "عقاري",
		"case_client_id": clientID.String(),
		"parties": []fiber.Map{
			{"party_name": "مؤسسة البناء", "party_role": "defendant"},
			{"party_name": "أحمد المالكي", "party_role": "witness"},
		},
		"documents": []fiber.Map{
			{"document_title": "عقد الإيجار"},
		},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	var caseCount, partyCount, docCount int64
	db.Model(&caseModel.Case{}).Count(&caseCount)
	db.Model(&caseModel.CaseParty{}).Count(&partyCount)
	db.Model(&caseModel.CaseDocument{}).Count(&docCount)
	if caseCount != 1 || partyCount != 2 || docCount != 1 {
		t.Fatalf("rows = case:%d party:%d doc:%d, want 1/2/1", caseCount, partyCount, docCount)
	}

	var resp struct {
		Success  bool     `json:"success"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success {
		t.Fatal("success = false")
	}
	if len(resp.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", resp.Warnings)
	}
}

func TestCreateCaseChildFailureKeepsCase(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	clientID := seedClient(t, db)

	// child inserts have nowhere to go, the case row must still land
	if err := db.Migrator().DropTable(&caseModel.CaseParty{}); err != nil {
		t.Fatalf("drop parties: %v", err)
	}

	status, body := doJSON(t, app, "POST", "/api/cases", fiber.Map{
		"case_title":     "قضية تعويض",
		"case_number":    "1447/400",
		"case_type":      "مدني",
		"case_client_id": clientID.String(),
		"parties": []fiber.Map{
			{"party_name": "شركة النقل", "party_role": "defendant"},
		},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	var caseCount int64
	db.Model(&caseModel.Case{}).Count(&caseCount)
	if caseCount != 1 {
		t.Fatalf("case count = %d, want 1", caseCount)
	}

	var resp struct {
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one entry for the failed party", resp.Warnings)
	}
}

func TestCreateCaseDuplicateNumberConflict(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	clientID := seedClient(t, db)

	payload := fiber.Map{
		"case_title":     "قضية أولى",
		"case_number":    "1447/500",
		"case_type":      "تجاري",
		"case_client_id": clientID.String(),
	}
	status, body := doJSON(t, app, "POST", "/api/cases", payload)
	if status != fiber.StatusCreated {
		t.Fatalf("first create status = %d, body = %s", status, body)
	}

	status, body = doJSON(t, app, "POST", "/api/cases", payload)
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409; body = %s", status, body)
	}

	var resp helper.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ErrorCode != "CONFLICT" {
		t.Fatalf("error code = %q, want CONFLICT", resp.ErrorCode)
	}

	var count int64
	db.Model(&caseModel.Case{}).Count(&count)
	if count != 1 {
		t.Fatalf("case count = %d, want 1", count)
	}
}

func TestCreateCaseMissingTitleRejected(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	clientID := seedClient(t, db)

	status, body := doJSON(t, app, "POST", "/api/cases", fiber.Map{
		"case_number":    "1447/600",
		"case_type":      "جنائي",
		"case_client_id": clientID.String(),
	})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", status, body)
	}

	var resp helper.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Errors["case_title"]) == 0 {
		t.Fatalf("errors missing case_title key: %v", resp.Errors)
	}
}

func TestGetCaseDetailIncludesChildren(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	clientID := seedClient(t, db)

	cs := caseModel.Case{
		CaseTitle:    "قضية حضانة",
		CaseNumber:   "1447/700",
		CaseType:     "أحوال شخصية",
		CaseStatus:   caseModel.CaseStatusOpen,
		CasePriority: caseModel.CasePriorityHigh,
		CaseClientID: clientID,
	}
	if err := db.Create(&cs).Error; err != nil {
		t.Fatalf("seed case: %v", err)
	}
	party := caseModel.CaseParty{
		PartyCaseID: cs.CaseID,
		PartyName:   "سارة الزهراني",
		PartyRole:   caseModel.PartyRolePlaintiff,
	}
	if err := db.Create(&party).Error; err != nil {
		t.Fatalf("seed party: %v", err)
	}

	status, body := doJSON(t, app, "GET", "/api/cases/"+cs.CaseID.String(), nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	var resp struct {
		Data struct {
			Case    caseModel.Case        `json:"case"`
			Parties []caseModel.CaseParty `json:"parties"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.Case.CaseID != cs.CaseID {
		t.Fatalf("case id = %s, want %s", resp.Data.Case.CaseID, cs.CaseID)
	}
	if len(resp.Data.Parties) != 1 {
		t.Fatalf("parties = %d, want 1", len(resp.Data.Parties))
	}
}

func TestCaseTimestampsSurviveReload(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	clientID := seedClient(t, db)

	status, body := doJSON(t, app, "POST", "/api/cases", fiber.Map{
		"case_title":     "قضية عمالية",
		"case_number":    "1447/900",
		"case_type":      "عمالي",
		"case_client_id": clientID.String(),
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	// the created/updated columns must scan back as time.Time on every
	// dialect, not only on Postgres
	var reloaded caseModel.Case
	if err := db.First(&reloaded, "case_number = ?", "1447/900").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.CaseCreatedAt.IsZero() || reloaded.CaseUpdatedAt.IsZero() {
		t.Fatalf("timestamps not populated: created=%v updated=%v",
			reloaded.CaseCreatedAt, reloaded.CaseUpdatedAt)
	}
}

func TestUpdateCaseCannotTouchNextSessionDate(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	clientID := seedClient(t, db)

	cs := caseModel.Case{
		CaseTitle:    "قضية شيك",
		CaseNumber:   "1447/800",
		CaseType:     "تجاري",
		CaseStatus:   caseModel.CaseStatusOpen,
		CasePriority: caseModel.CasePriorityNormal,
		CaseClientID: clientID,
	}
	if err := db.Create(&cs).Error; err != nil {
		t.Fatalf("seed case: %v", err)
	}

	status, body := doJSON(t, app, "PUT", "/api/cases/"+cs.CaseID.String(), fiber.Map{
		"case_status":            caseModel.CaseStatusClosed,
		"case_next_session_date": "2030-01-01",
	})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	var reloaded caseModel.Case
	if err := db.First(&reloaded, "case_id = ?", cs.CaseID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.CaseStatus != caseModel.CaseStatusClosed {
		t.Fatalf("status not applied: %q", reloaded.CaseStatus)
	}
	if reloaded.CaseNextSessionDate != nil {
		t.Fatalf("derived field written through the form: %v", reloaded.CaseNextSessionDate)
	}
}
