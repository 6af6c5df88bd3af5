package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TheVinit/GFM-record-management-app-sub000/config"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// Map driver errors (unique violations etc.) onto gorm sentinels
		// so handlers can branch on error kinds instead of message text.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Profile{},
		&models.Student{},
		&models.TeacherBatchConfig{},
		&models.BatchDefinition{},
		&models.AttendanceSession{},
		&models.AttendanceRecord{},
		&models.AttendanceFollowUp{},
		&models.PreInformedAbsence{},
		&models.FeePayment{},
		&models.StudentActivity{},
		&models.Achievement{},
		&models.Internship{},
		&models.AcademicRecord{},
		&models.AttendanceReport{},
		&models.PasswordResetToken{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}
