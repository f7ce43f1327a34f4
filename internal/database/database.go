package database

import (
	"coinvest/config"
	"coinvest/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.InvestmentPlan{},
		&models.Investment{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.Referral{},
		&models.AdminWallet{},
		&models.LedgerEntry{},
		&models.Notification{},
	)
}

// SeedAdmin creates a default admin account when none exists.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("seed admin: hash password")
		return
	}
	admin := models.Admin{
		Name:         "Administrator",
		Email:        "admin@coinvest.io",
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		logrus.WithError(err).Error("seed admin: create")
		return
	}
	logrus.WithField("email", admin.Email).Warn("seeded default admin account, change the password")
}
