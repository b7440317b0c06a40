// file: internals/features/sessions/service/next_session_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	caseModel "maktabi_backend/internals/features/cases/model"
	sessionModel "maktabi_backend/internals/features/sessions/model"
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
	if err := db.AutoMigrate(&caseModel.Case{}, &sessionModel.CourtSession{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCase(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	cs := caseModel.Case{
		CaseTitle:    "قضية اختبار",
		CaseNumber:   uuid.New().String(),
		CaseType:     "مدني",
		CaseStatus:   caseModel.CaseStatusOpen,
		CasePriority: caseModel.CasePriorityNormal,
		CaseClientID: uuid.New(),
	}
	if err := db.Create(&cs).Error; err != nil {
		t.Fatalf("seed case: %v", err)
	}
	return cs.CaseID
}

func addSession(t *testing.T, db *gorm.DB, caseID uuid.UUID, daysFromNow int) {
	t.Helper()
	d := time.Now().UTC().AddDate(0, 0, daysFromNow)
	date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	s := sessionModel.CourtSession{
		SessionCaseID:   caseID,
		SessionDate:     date,
		SessionTime:     "09:00",
		SessionLocation: "المحكمة العامة",
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func loadNextDate(t *testing.T, db *gorm.DB, caseID uuid.UUID) *time.Time {
	t.Helper()
	var cs caseModel.Case
	if err := db.First(&cs, "case_id = ?", caseID).Error; err != nil {
		t.Fatalf("reload case: %v", err)
	}
	return cs.CaseNextSessionDate
}

func TestRecomputePicksEarliestFutureSession(t *testing.T) {
	db := openTestDB(t)
	caseID := seedCase(t, db)

	addSession(t, db, caseID, 10)
	addSession(t, db, caseID, 3)
	addSession(t, db, caseID, -5) // past, must be ignored

	if err := Recompute(db, caseID, time.UTC); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	got := loadNextDate(t, db, caseID)
	if got == nil {
		t.Fatal("next date nil, want the session 3 days out")
	}
	want := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	if got.Format("2006-01-02") != want {
		t.Fatalf("next date = %s, want %s", got.Format("2006-01-02"), want)
	}
}

func TestRecomputeAllSessionsInPastYieldsNull(t *testing.T) {
	db := openTestDB(t)
	caseID := seedCase(t, db)

	addSession(t, db, caseID, -1)
	addSession(t, db, caseID, -30)

	if err := Recompute(db, caseID, time.UTC); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := loadNextDate(t, db, caseID); got != nil {
		t.Fatalf("next date = %v, want nil when every session is in the past", got)
	}
}

func TestRecomputeTodayCountsAsNext(t *testing.T) {
	db := openTestDB(t)
	caseID := seedCase(t, db)

	addSession(t, db, caseID, 0)

	if err := Recompute(db, caseID, time.UTC); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	got := loadNextDate(t, db, caseID)
	if got == nil {
		t.Fatal("next date nil, a session today still counts")
	}
	want := time.Now().UTC().Format("2006-01-02")
	if got.Format("2006-01-02") != want {
		t.Fatalf("next date = %s, want %s", got.Format("2006-01-02"), want)
	}
}

func TestRecomputeNoSessionsYieldsNull(t *testing.T) {
	db := openTestDB(t)
	caseID := seedCase(t, db)

	// give it a stale value first
	stale := time.Now().UTC().AddDate(0, 0, 5)
	if err := db.Model(&caseModel.Case{}).
		Where("case_id = ?", caseID).
		Update("case_next_session_date", stale).Error; err != nil {
		t.Fatalf("set stale value: %v", err)
	}

	if err := Recompute(db, caseID, time.UTC); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := loadNextDate(t, db, caseID); got != nil {
		t.Fatalf("next date = %v, want nil when the case has no sessions", got)
	}
}

func TestStartOfToday(t *testing.T) {
	got := StartOfToday(time.UTC)
	now := time.Now().UTC()
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("start of today not midnight: %v", got)
	}
	if got.Day() != now.Day() || got.Month() != now.Month() || got.Year() != now.Year() {
		t.Fatalf("start of today wrong day: %v", got)
	}
}
