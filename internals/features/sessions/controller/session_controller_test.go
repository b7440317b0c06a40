// file: internals/features/sessions/controller/session_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityModel "maktabi_backend/internals/features/activity/model"
	caseModel "maktabi_backend/internals/features/cases/model"
	clientModel "maktabi_backend/internals/features/clients/model"
	sessionModel "maktabi_backend/internals/features/sessions/model"
	sessionRoute "maktabi_backend/internals/features/sessions/route"
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
		&sessionModel.CourtSession{},
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
	sessionRoute.SessionRoutes(api, db, time.UTC)
	return app
}

func seedCase(t *testing.T, db *gorm.DB) *caseModel.Case {
	t.Helper()
	client := clientModel.Client{ClientFirstName: "سعيد", ClientLastName: "الحربي"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	cs := caseModel.Case{
		CaseTitle:    "نزاع عقاري",
		CaseNumber:   "1447-" + uuid.New().String()[:8],
		CaseType:     "مدني",
		CaseStatus:   caseModel.CaseStatusOpen,
		CasePriority: caseModel.CasePriorityNormal,
		CaseClientID: client.ClientID,
	}
	if err := db.Create(&cs).Error; err != nil {
		t.Fatalf("seed case: %v", err)
	}
	return &cs
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, []byte) {
	t.Helper()
	var reqBody *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
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

func nextSessionDate(t *testing.T, db *gorm.DB, caseID uuid.UUID) *time.Time {
	t.Helper()
	var cs caseModel.Case
	if err := db.First(&cs, "case_id = ?", caseID).Error; err != nil {
		t.Fatalf("reload case: %v", err)
	}
	return cs.CaseNextSessionDate
}

func TestCreatePastSessionLeavesNextDateNull(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	cs := seedCase(t, db)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	status, body := doJSON(t, app, "POST", "/api/sessions", fiber.Map{
		"session_case_id":  cs.CaseID.String(),
		"session_date":     yesterday,
		"session_time":     "09:30",
		"session_location": "المحكمة العامة",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	if got := nextSessionDate(t, db, cs.CaseID); got != nil {
		t.Fatalf("next session date = %v, want nil for a past-only session", got)
	}
}

func TestCreateFutureSessionSetsNextDate(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	cs := seedCase(t, db)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	nextWeek := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	// later session first, then an earlier one; the earlier must win
	for _, d := range []string{nextWeek, tomorrow} {
		status, body := doJSON(t, app, "POST", "/api/sessions", fiber.Map{
			"session_case_id":  cs.CaseID.String(),
			"session_date":     d,
			"session_time":     "10:00",
			"session_location": "محكمة الاستئناف",
		})
		if status != fiber.StatusCreated {
			t.Fatalf("status = %d, body = %s", status, body)
		}
	}

	got := nextSessionDate(t, db, cs.CaseID)
	if got == nil {
		t.Fatal("next session date is nil, want tomorrow")
	}
	if got.Format("2006-01-02") != tomorrow {
		t.Fatalf("next session date = %s, want %s", got.Format("2006-01-02"), tomorrow)
	}
}

func TestDeleteLastFutureSessionClearsNextDate(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	cs := seedCase(t, db)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	status, body := doJSON(t, app, "POST", "/api/sessions", fiber.Map{
		"session_case_id":  cs.CaseID.String(),
		"session_date":     tomorrow,
		"session_time":     "11:00",
		"session_location": "المحكمة العمالية",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", status, body)
	}
	if nextSessionDate(t, db, cs.CaseID) == nil {
		t.Fatal("next session date not set after create")
	}

	var row sessionModel.CourtSession
	if err := db.First(&row, "session_case_id = ?", cs.CaseID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	status, body = doJSON(t, app, "DELETE", "/api/sessions/"+row.SessionID.String(), nil)
	if status != fiber.StatusOK {
		t.Fatalf("delete status = %d, body = %s", status, body)
	}

	if got := nextSessionDate(t, db, cs.CaseID); got != nil {
		t.Fatalf("next session date = %v after deleting the only future session, want nil", got)
	}
}

func TestUpdateSessionDateMovesNextDate(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	cs := seedCase(t, db)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	inThreeDays := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")

	status, body := doJSON(t, app, "POST", "/api/sessions", fiber.Map{
		"session_case_id":  cs.CaseID.String(),
		"session_date":     tomorrow,
		"session_time":     "09:00",
		"session_location": "المحكمة التجارية",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	var row sessionModel.CourtSession
	if err := db.First(&row, "session_case_id = ?", cs.CaseID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	status, body = doJSON(t, app, "PUT", "/api/sessions/"+row.SessionID.String(), fiber.Map{
		"session_date":     inThreeDays,
		"session_time":     "09:00",
		"session_location": "المحكمة التجارية",
	})
	if status != fiber.StatusOK {
		t.Fatalf("update status = %d, body = %s", status, body)
	}

	got := nextSessionDate(t, db, cs.CaseID)
	if got == nil || got.Format("2006-01-02") != inThreeDays {
		t.Fatalf("next session date = %v, want %s", got, inThreeDays)
	}
}

func TestCreateSessionMissingLocationRejected(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	cs := seedCase(t, db)

	status, body := doJSON(t, app, "POST", "/api/sessions", fiber.Map{
		"session_case_id": cs.CaseID.String(),
		"session_date":    time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		"session_time":    "09:00",
	})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", status, body)
	}

	var resp helper.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp.Success {
		t.Fatal("success = true on validation failure")
	}
	if len(resp.Errors["session_location"]) == 0 {
		t.Fatalf("errors missing session_location key: %v", resp.Errors)
	}

	var count int64
	db.Model(&sessionModel.CourtSession{}).Count(&count)
	if count != 0 {
		t.Fatalf("session count = %d after rejected create, want 0", count)
	}
}

func TestSessionMutationWritesOneActivityRow(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	cs := seedCase(t, db)

	status, body := doJSON(t, app, "POST", "/api/sessions", fiber.Map{
		"session_case_id":  cs.CaseID.String(),
		"session_date":     time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02"),
		"session_time":     "13:00",
		"session_location": "محكمة الأحوال الشخصية",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	var row sessionModel.CourtSession
	if err := db.First(&row, "session_case_id = ?", cs.CaseID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}

	var acts []activityModel.Activity
	if err := db.Where(
		"activity_entity_type = ? AND activity_entity_id = ?",
		activityModel.EntitySession, row.SessionID,
	).Find(&acts).Error; err != nil {
		t.Fatalf("load activities: %v", err)
	}
	if len(acts) != 1 {
		t.Fatalf("activity rows = %d, want exactly 1", len(acts))
	}
	if acts[0].ActivityAction != activityModel.ActionCreate {
		t.Fatalf("activity action = %q, want %q", acts[0].ActivityAction, activityModel.ActionCreate)
	}
	if acts[0].ActivityUserName == "" {
		t.Fatal("activity user name empty")
	}
}

func TestSessionCreateSurvivesMissingActivityTable(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	cs := seedCase(t, db)

	if err := db.Migrator().DropTable(&activityModel.Activity{}); err != nil {
		t.Fatalf("drop activities: %v", err)
	}

	status, body := doJSON(t, app, "POST", "/api/sessions", fiber.Map{
		"session_case_id":  cs.CaseID.String(),
		"session_date":     time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		"session_time":     "08:30",
		"session_location": "المحكمة الإدارية",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d with audit table missing, want 201; body = %s", status, body)
	}

	var count int64
	db.Model(&sessionModel.CourtSession{}).Count(&count)
	if count != 1 {
		t.Fatalf("session count = %d, want 1", count)
	}
}
