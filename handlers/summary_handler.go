package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
	"github.com/TheVinit/GFM-record-management-app-sub000/roster"
)

// SummaryHandler serves the GFM's view of a day: their batch slice of
// the division session, plus the follow-up log.
type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler { return &SummaryHandler{} }

// batchConfigFor loads the caller's approved batch config.
func batchConfigFor(teacherID string) (*models.TeacherBatchConfig, error) {
	var cfg models.TeacherBatchConfig
	if err := database.DB.Where("teacher_id = ?", teacherID).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findDivisionSession picks the session covering a GFM config on a
// date. Sessions store the year label the taker typed, configs the one
// the GFM typed, so the match is canonical ("SE" ≡ "Second Year").
func findDivisionSession(date string, cfg *models.TeacherBatchConfig) (*models.AttendanceSession, error) {
	var sessions []models.AttendanceSession
	err := database.DB.Where("date = ? AND department = ? AND division = ?",
		date, cfg.Department, roster.MainDivision(cfg.Division)).
		Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if roster.SameYear(sessions[i].AcademicYear, cfg.Class) {
			return &sessions[i], nil
		}
	}
	if len(sessions) > 0 {
		// year labels too far apart to reconcile; latest session for the
		// division is still the best available answer
		return &sessions[0], nil
	}
	return nil, gorm.ErrRecordNotFound
}

// GET /gfm/summary?date=YYYY-MM-DD
func (h *SummaryHandler) Summary(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = localDate(time.Now())
	}

	cfg, err := batchConfigFor(getUserID(c))
	if err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "BATCH_NOT_CONFIGURED"})
		}
		return dbError(c, err)
	}
	if cfg.Status != models.BatchStatusApproved {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "BATCH_NOT_APPROVED"})
	}

	session, err := findDivisionSession(date, cfg)
	if err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusOK, map[string]any{
				"date":          date,
				"session":       nil,
				"batch_records": []roster.Record{},
				"summary":       roster.Aggregate(nil),
			})
		}
		return dbError(c, err)
	}

	all, err := loadSessionRecordViews(session.ID)
	if err != nil {
		return dbError(c, err)
	}
	batch := roster.FilterByRange(all, roster.Range{From: cfg.RbtFrom, To: cfg.RbtTo})

	prns := make([]string, 0)
	for _, r := range batch {
		if r.Status == models.StatusAbsent {
			prns = append(prns, r.Prn)
		}
	}

	var followed []string
	if len(prns) > 0 {
		database.DB.Model(&models.AttendanceFollowUp{}).
			Where("date = ? AND student_prn IN ?", date, prns).
			Distinct().Pluck("student_prn", &followed)
	}

	var preInformed []string
	if len(prns) > 0 {
		database.DB.Model(&models.PreInformedAbsence{}).
			Where("status = ? AND student_prn IN ? AND start_date <= ? AND end_date >= ?",
				"Approved", prns, date, date).
			Distinct().Pluck("student_prn", &preInformed)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":          date,
		"session":       session,
		"batch_range":   cfg.RbtFrom + " - " + cfg.RbtTo,
		"batch_records": batch,
		"summary":       roster.Aggregate(batch),
		"followed_up":   followed,
		"pre_informed":  preInformed,
	})
}

type followUpReq struct {
	StudentPrn  string `json:"student_prn" validate:"required"`
	Date        string `json:"date"`
	Type        string `json:"type" validate:"omitempty,oneof=call message visit"`
	Reason      string `json:"reason" validate:"required"`
	Description string `json:"description"`
	ReportURL   string `json:"report_url"`
	MarkAsLate  bool   `json:"mark_as_late"`
}

// POST /gfm/follow-ups
// Logs the communication. With mark_as_late the day's attendance record
// is flipped to Present with a late remark, stamped with the approving
// GFM.
func (h *SummaryHandler) CreateFollowUp(c echo.Context) error {
	var req followUpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}
	if req.Date == "" {
		req.Date = localDate(time.Now())
	}
	if req.Type == "" {
		req.Type = "call"
	}

	fu := models.AttendanceFollowUp{
		ID:          uuid.NewString(),
		StudentPrn:  req.StudentPrn,
		GfmID:       getUserID(c),
		Date:        req.Date,
		Type:        req.Type,
		Reason:      req.Reason,
		Description: req.Description,
		ReportURL:   req.ReportURL,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fu).Error; err != nil {
			return err
		}
		if !req.MarkAsLate {
			return nil
		}
		return tx.Model(&models.AttendanceRecord{}).
			Where("student_prn = ? AND session_id IN (?)",
				req.StudentPrn,
				tx.Session(&gorm.Session{NewDB: true}).
					Model(&models.AttendanceSession{}).Select("id").Where("date = ?", req.Date),
			).
			Updates(map[string]any{
				"status":          models.StatusPresent,
				"remark":          "Late Remark: " + req.Reason,
				"approved_by_gfm": getUserID(c),
			}).Error
	})
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, fu)
}

// GET /gfm/follow-ups?date=&prn=
func (h *SummaryHandler) ListFollowUps(c echo.Context) error {
	tx := database.DB.Model(&models.AttendanceFollowUp{}).Where("gfm_id = ?", getUserID(c))
	if date := strings.TrimSpace(c.QueryParam("date")); date != "" {
		tx = tx.Where("date = ?", date)
	}
	if prn := strings.TrimSpace(c.QueryParam("prn")); prn != "" {
		tx = tx.Where("student_prn = ?", prn)
	}

	var rows []models.AttendanceFollowUp
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
