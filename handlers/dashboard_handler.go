package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /admin/dashboard
func (h *DashboardHandler) Admin(c echo.Context) error {
	today := localDate(time.Now())

	var students, teachers, takers, pendingConfigs, pendingAbsences, sessionsToday int64
	database.DB.Model(&models.Student{}).Count(&students)
	database.DB.Model(&models.Profile{}).Where("role = ?", "teacher").Count(&teachers)
	database.DB.Model(&models.Profile{}).Where("role = ?", "attendance_taker").Count(&takers)
	database.DB.Model(&models.TeacherBatchConfig{}).
		Where("status = ?", models.BatchStatusPending).Count(&pendingConfigs)
	database.DB.Model(&models.PreInformedAbsence{}).
		Where("status = ?", "Pending").Count(&pendingAbsences)
	database.DB.Model(&models.AttendanceSession{}).
		Where("date = ?", today).Count(&sessionsToday)

	// record uploads awaiting verification, across all record types
	var pendingVerifications int64
	for _, m := range []any{
		&models.FeePayment{}, &models.StudentActivity{},
		&models.Achievement{}, &models.Internship{},
	} {
		var n int64
		database.DB.Model(m).Where("verification_status = ?", models.VerifyPending).Count(&n)
		pendingVerifications += n
	}

	return c.JSON(http.StatusOK, map[string]any{
		"students":              students,
		"teachers":              teachers,
		"attendance_takers":     takers,
		"pending_batch_configs": pendingConfigs,
		"pending_absences":      pendingAbsences,
		"pending_verifications": pendingVerifications,
		"sessions_today":        sessionsToday,
	})
}

// GET /taker/dashboard
// What the attendance taker sees on open: today's submitted sessions
// and the divisions they cover.
func (h *DashboardHandler) Taker(c echo.Context) error {
	today := localDate(time.Now())

	var sessions []models.AttendanceSession
	if err := database.DB.Where("date = ? AND teacher_id = ?", today, getUserID(c)).
		Order("created_at DESC").Find(&sessions).Error; err != nil {
		return dbError(c, err)
	}

	var divisions []string
	database.DB.Model(&models.AttendanceSession{}).
		Where("date = ?", today).Distinct().Pluck("division", &divisions)

	return c.JSON(http.StatusOK, map[string]any{
		"date":                today,
		"my_sessions":         sessions,
		"completed_divisions": divisions,
	})
}
