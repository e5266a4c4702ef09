package database

import (
	"fmt"
	"time"

	"restaurant_manager/config"
	"restaurant_manager/logger"
	"restaurant_manager/model"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDB opens the configured database and stores it in DB.
func ConnectDB(s config.Settings) error {
	db, err := Open(s)
	if err != nil {
		return err
	}
	DB = db
	logger.WithComponent("database").Info().Str("driver", s.DBDriver).Msg("connection opened")
	return nil
}

func Open(s config.Settings) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch s.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(s.DBPath+"?_foreign_keys=on&_busy_timeout=5000"), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", s.DBPath, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName, s.DBSSLMode)
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres %s:%d/%s: %w", s.DBHost, s.DBPort, s.DBName, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		return db, nil
	}
}

// OpenInMemory returns an isolated, migrated SQLite database. Used by tests and local tooling.
func OpenInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusHistory{},
		&model.OrderSequence{},
		&model.Customer{},
		&model.LoyaltyProgram{},
		&model.LoyaltyReward{},
		&model.RewardRedemption{},
		&model.Payment{},
		&model.PaymentRefund{},
		&model.Staff{},
		&model.Timesheet{},
		&model.TimesheetBreak{},
		&model.Notification{},
		&model.InventoryItem{},
		&model.TableQRCode{},
		&model.Deployment{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
