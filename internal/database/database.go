package database

import (
	"database/sql"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/simitmodi/Stride-sub000/internal/models"
)

var db *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	if db != nil {
		return db
	}

	if err := ensureDatabase(dsn); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := conn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Printf("warning: failed to ensure uuid-ossp extension: %v", err)
	}

	if err := migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := seedChecklists(conn); err != nil {
		log.Fatalf("checklist seed failed: %v", err)
	}

	db = conn
	return db
}

// DB exposes the initialized gorm.DB instance.
func DB() *gorm.DB {
	return db
}

func migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.User{},
		&models.SMSVerification{},
		&models.Appointment{},
		&models.Feedback{},
		&models.DocumentChecklist{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

// seedChecklists inserts the per-category document requirements served by
// the checklist endpoint. Existing rows are left untouched.
func seedChecklists(conn *gorm.DB) error {
	seeds := []models.DocumentChecklist{
		{ServiceCategory: "Account Opening", Documents: pq.StringArray{
			"Aadhaar Card", "PAN Card", "Passport-size Photograph", "Address Proof",
		}},
		{ServiceCategory: "Loan Services", Documents: pq.StringArray{
			"Aadhaar Card", "PAN Card", "Income Proof", "Bank Statements (6 months)", "Property Documents",
		}},
		{ServiceCategory: "Card Services", Documents: pq.StringArray{
			"Aadhaar Card", "PAN Card", "Existing Card (if replacement)",
		}},
		{ServiceCategory: "Locker Services", Documents: pq.StringArray{
			"Aadhaar Card", "PAN Card", "Passport-size Photograph",
		}},
		{ServiceCategory: "Fixed Deposit", Documents: pq.StringArray{
			"Aadhaar Card", "PAN Card",
		}},
	}

	for _, seed := range seeds {
		var existing models.DocumentChecklist
		err := conn.Where("service_category = ?", seed.ServiceCategory).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := conn.Create(&seed).Error; err != nil {
			return err
		}
	}

	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
