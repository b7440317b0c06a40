package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"maktabi_backend/internals/configs"
	activityModel "maktabi_backend/internals/features/activity/model"
	billingModel "maktabi_backend/internals/features/billing/model"
	caseModel "maktabi_backend/internals/features/cases/model"
	clientModel "maktabi_backend/internals/features/clients/model"
	courtModel "maktabi_backend/internals/features/courts/model"
	sessionModel "maktabi_backend/internals/features/sessions/model"
)

// Connect opens the Supabase PostgreSQL handle. The handle is constructed
// once in main and injected into every controller; feature code never reaches
// for a package-level DB.
func Connect() (*gorm.DB, error) {
	log.Println("🔌 Connecting to PostgreSQL (Supabase)...")

	// Full DSN + statement_timeout. With PgBouncer (transaction pooling) keep
	// PreferSimpleProtocol=true and point host/port at the pooler.
	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=maktabi&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	log.Println("✅ DB connected.")
	return db, nil
}

// Migrate syncs the schema with AutoMigrate. The whole schema lives in the
// models; there is no separate migration tooling.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientModel.Client{},
		&courtModel.Court{},
		&caseModel.Case{},
		&caseModel.CaseParty{},
		&caseModel.CaseDocument{},
		&caseModel.CaseEvent{},
		&sessionModel.CourtSession{},
		&billingModel.Bill{},
		&billingModel.Receipt{},
		&activityModel.Activity{},
	)
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// Keep under the Supabase/PgBouncer connection limits.
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUp pings the pool shortly after startup so the first real request does
// not pay the connection cost.
func WarmUp(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		sqlDB, err := db.DB()
		if err != nil {
			log.Printf("warm-up err: %v", err)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}
