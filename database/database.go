package database

import (
	"fmt"
	"log"
	"time"

	"revio/config"
	"revio/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

const (
	connectRetryInterval = 5 * time.Second
	connectMaxAttempts   = 12
)

// ConnectDb establishes a connection to PostgreSQL, retrying on a fixed
// interval before giving up. A process without a store can only answer 500s,
// so exhausting the retry budget is fatal.
func ConnectDb() {
	cfg := config.AppConfig

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectMaxAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("Database connection attempt %d/%d failed: %v", attempt, connectMaxAttempts, err)
		if attempt < connectMaxAttempts {
			time.Sleep(connectRetryInterval)
		}
	}
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL after %d attempts: %v", connectMaxAttempts, err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// Ping checks store connectivity for the health endpoint
func Ping() error {
	if Database.Db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := Database.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
