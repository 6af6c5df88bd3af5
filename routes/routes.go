package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/config"
	"github.com/TheVinit/GFM-record-management-app-sub000/handlers"
	"github.com/TheVinit/GFM-record-management-app-sub000/middlewares"
)

func Register(e *echo.Echo, cfg *config.Config) {
	health := handlers.NewHealthHandler()
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	staff := handlers.NewStaffHandler()
	students := handlers.NewStudentHandler()
	batchCfg := handlers.NewBatchConfigHandler()
	batchDef := handlers.NewBatchDefinitionHandler()
	attendance := handlers.NewAttendanceHandler()
	summary := handlers.NewSummaryHandler()
	reports := handlers.NewReportHandler()
	absences := handlers.NewAbsenceHandler()
	fees := handlers.NewFeeHandler()
	activities := handlers.NewActivityHandler()
	internships := handlers.NewInternshipHandler()
	academics := handlers.NewAcademicHandler()
	dashboard := handlers.NewDashboardHandler()

	e.GET("/healthz", health.Check)

	// public auth surface
	e.POST("/auth/login", auth.Login)
	e.POST("/auth/forgot-password", auth.ForgotPassword)
	e.POST("/auth/reset-password", auth.ResetPassword)

	api := e.Group("", middlewares.RequireAuth(cfg.JWTSecret))
	api.PUT("/me/password", auth.ChangePassword)

	// admin-only management
	admin := api.Group("/admin", middlewares.RequireRole("admin"))
	admin.GET("/dashboard", dashboard.Admin)
	admin.GET("/staff", staff.List)
	admin.POST("/staff", staff.Create)
	admin.POST("/staff/:id/reset", staff.ResetPassword)
	admin.DELETE("/staff/:id", staff.Delete)
	admin.GET("/batch-configs", batchCfg.List)
	admin.POST("/batch-configs/:id/approve", batchCfg.Approve)
	admin.POST("/batch-configs/:id/reject", batchCfg.Reject)
	admin.GET("/batch-definitions", batchDef.List)
	admin.POST("/batch-definitions", batchDef.Create)
	admin.PUT("/batch-definitions/:id", batchDef.Update)
	admin.DELETE("/batch-definitions/:id", batchDef.Delete)
	admin.GET("/fees/export", fees.ExportCSV)

	// student directory: reads for any staff role, writes for admin
	staffRoles := middlewares.RequireRole("admin", "teacher", "attendance_taker")
	api.GET("/students", students.List, staffRoles)
	api.GET("/students/export", students.ExportCSV, staffRoles)
	api.GET("/students/roster", students.Roster, staffRoles)
	api.GET("/students/:prn", students.Get)
	api.POST("/students", students.Create, middlewares.RequireRole("admin"))
	api.POST("/students/import", students.Import, middlewares.RequireRole("admin"))
	api.PUT("/students/:prn", students.Update, middlewares.RequireRole("admin", "teacher"))
	api.DELETE("/students/:prn", students.Delete, middlewares.RequireRole("admin"))
	api.PUT("/students/:prn/verify", students.Verify, middlewares.RequireRole("admin", "teacher"))

	// attendance taking
	taker := api.Group("/attendance", middlewares.RequireRole("attendance_taker", "admin"))
	taker.POST("/sessions", attendance.Submit)
	taker.GET("/sessions", attendance.List)
	taker.GET("/sessions/:id", attendance.Get)
	taker.DELETE("/sessions/:id", attendance.Delete)
	taker.GET("/completed-divisions", attendance.CompletedDivisions)
	api.GET("/taker/dashboard", dashboard.Taker, middlewares.RequireRole("attendance_taker"))

	// GFM surface
	gfm := api.Group("/gfm", middlewares.RequireRole("teacher"))
	gfm.GET("/batch-config", batchCfg.Mine)
	gfm.PUT("/batch-config", batchCfg.Upsert)
	gfm.GET("/batch-config/roster", batchCfg.Roster)
	gfm.GET("/summary", summary.Summary)
	gfm.POST("/follow-ups", summary.CreateFollowUp)
	gfm.GET("/follow-ups", summary.ListFollowUps)
	gfm.POST("/reports", reports.Generate)
	gfm.GET("/reports", reports.List)
	gfm.GET("/reports/:id/pdf", reports.PDF, middlewares.RequireRole("teacher", "admin"))

	// pre-informed absences: students file, GFMs decide
	api.POST("/absences", absences.Create)
	api.GET("/absences", absences.List)
	api.GET("/absences/pending-count", absences.PendingCount, middlewares.RequireRole("teacher", "admin"))
	api.POST("/absences/:id/approve", absences.Approve, middlewares.RequireRole("teacher", "admin"))
	api.POST("/absences/:id/reject", absences.Reject, middlewares.RequireRole("teacher", "admin"))

	// per-student record uploads and verification
	api.GET("/students/:prn/fees", fees.List)
	api.POST("/students/:prn/fees", fees.Create)
	api.PUT("/fees/:id/verify", fees.Verify, middlewares.RequireRole("teacher", "admin"))
	api.DELETE("/fees/:id", fees.Delete)

	api.GET("/students/:prn/activities", activities.ListActivities)
	api.POST("/students/:prn/activities", activities.CreateActivity)
	api.PUT("/activities/:id/verify", activities.VerifyActivity, middlewares.RequireRole("teacher", "admin"))
	api.DELETE("/activities/:id", activities.DeleteActivity)

	api.GET("/students/:prn/achievements", activities.ListAchievements)
	api.POST("/students/:prn/achievements", activities.CreateAchievement)
	api.PUT("/achievements/:id/verify", activities.VerifyAchievement, middlewares.RequireRole("teacher", "admin"))
	api.DELETE("/achievements/:id", activities.DeleteAchievement)

	api.GET("/students/:prn/internships", internships.List)
	api.POST("/students/:prn/internships", internships.Create)
	api.PUT("/internships/:id/verify", internships.Verify, middlewares.RequireRole("teacher", "admin"))
	api.DELETE("/internships/:id", internships.Delete)

	api.GET("/students/:prn/academics", academics.List)
	api.POST("/students/:prn/academics", academics.Create, middlewares.RequireRole("teacher", "admin"))
	api.PUT("/academics/:id", academics.Update, middlewares.RequireRole("teacher", "admin"))
	api.DELETE("/academics/:id", academics.Delete, middlewares.RequireRole("teacher", "admin"))
}
