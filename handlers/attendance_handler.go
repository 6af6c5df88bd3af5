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

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// deleteWindow is how long after creation a session may still be
// removed by its taker.
const deleteWindow = 24 * time.Hour

type submitAttendanceReq struct {
	Date         string `json:"date"` // YYYY-MM-DD, defaults to today
	Department   string `json:"department" validate:"required"`
	AcademicYear string `json:"academic_year" validate:"required"`
	Division     string `json:"division" validate:"required"`
	SubBatch     string `json:"sub_batch"`
	AbsentRolls  string `json:"absent_rolls"` // free-form "3, 10 26,40"
}

// localDate formats a wall-clock date the way every stored session and
// record does.
func localDate(t time.Time) string { return t.Format("2006-01-02") }

// sessionDeletable applies the 24-hour deletion window.
func sessionDeletable(createdAt, now time.Time) bool {
	return now.Sub(createdAt) < deleteWindow
}

// POST /attendance/sessions
// Resolves the division roster, marks the entered rolls absent and the
// rest present, and persists the session (locked) plus one record per
// student. A session already covering the same (date, department,
// year, division) rejects the submission.
func (h *AttendanceHandler) Submit(c echo.Context) error {
	var req submitAttendanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}
	if req.Date == "" {
		req.Date = localDate(time.Now())
	}
	division := roster.MainDivision(req.Division)

	students, err := loadDivisionRoster(req.Department, req.AcademicYear, division)
	if err != nil {
		return dbError(c, err)
	}

	batchName := "Division " + division
	if req.SubBatch != "" {
		label := subBatchLabel(division, req.SubBatch)
		defs, err := loadBatchDefinitions(req.Department, req.AcademicYear, division)
		if err != nil {
			return dbError(c, err)
		}
		def, ok := pickDefinition(defs, label)
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "BATCH_NOT_DEFINED"})
		}
		rng := roster.Range{From: def.RbtFrom, To: def.RbtTo}
		kept := make([]models.Student, 0, len(students))
		for _, s := range students {
			if rng.Contains(s.RollNo, s.Prn) {
				kept = append(kept, s)
			}
		}
		students = kept
		batchName = label
	}

	if len(students) == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NO_STUDENTS_IN_RANGE"})
	}

	tokens := roster.ParseAbsentInput(req.AbsentRolls)

	session := models.AttendanceSession{
		ID:           uuid.NewString(),
		TeacherID:    getUserID(c),
		Date:         req.Date,
		Department:   req.Department,
		AcademicYear: req.AcademicYear,
		Class:        req.AcademicYear,
		Division:     division,
		BatchName:    batchName,
		RbtFrom:      students[0].Prn,
		RbtTo:        students[len(students)-1].Prn,
		Locked:       true,
	}

	records := make([]models.AttendanceRecord, 0, len(students))
	for _, s := range students {
		status := models.StatusPresent
		if roster.MatchesRoll(tokens, s.RollNo) || roster.MatchesRoll(tokens, s.Prn) {
			status = models.StatusAbsent
		}
		records = append(records, models.AttendanceRecord{
			SessionID:  session.ID,
			StudentPrn: s.Prn,
			Status:     status,
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// one session per (date, dept, year, division): check and create
		// inside the transaction so two takers cannot both pass the check
		var existing []models.AttendanceSession
		if err := tx.Where("date = ? AND department = ?",
			session.Date, session.Department).Find(&existing).Error; err != nil {
			return err
		}
		if sessionExists(existing, session) {
			return errSessionExists
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		if err == errSessionExists {
			return c.JSON(http.StatusConflict, map[string]any{"error": "SESSION_EXISTS"})
		}
		return dbError(c, err)
	}

	views := make([]roster.Record, 0, len(records))
	for i, r := range records {
		views = append(views, roster.Record{
			Prn: r.StudentPrn, RollNo: students[i].RollNo, Status: r.Status,
		})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"session": session,
		"summary": roster.Aggregate(views),
	})
}

// errSessionExists flags the duplicate pre-check inside the submit
// transaction.
var errSessionExists = echo.NewHTTPError(http.StatusConflict, "SESSION_EXISTS")

// sessionExists reports whether any existing session already covers the
// same day and cohort. Year and division compare canonically: a session
// submitted under "SE" blocks a second one under "Second Year".
func sessionExists(existing []models.AttendanceSession, s models.AttendanceSession) bool {
	for _, e := range existing {
		if e.Date == s.Date &&
			strings.EqualFold(e.Department, s.Department) &&
			roster.SameYear(e.AcademicYear, s.AcademicYear) &&
			roster.SameDivision(e.Division, s.Division) {
			return true
		}
	}
	return false
}

// GET /attendance/sessions?date=YYYY-MM-DD
func (h *AttendanceHandler) List(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = localDate(time.Now())
	}

	var sessions []models.AttendanceSession
	if err := database.DB.Where("date = ?", date).
		Order("created_at DESC").Find(&sessions).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// GET /attendance/completed-divisions?date=&department=&year=
// Divisions already submitted for the day, so the taker UI can skip
// them.
func (h *AttendanceHandler) CompletedDivisions(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = localDate(time.Now())
	}
	department := strings.TrimSpace(c.QueryParam("department"))
	year := strings.TrimSpace(c.QueryParam("year"))

	tx := database.DB.Model(&models.AttendanceSession{}).Where("date = ?", date)
	if department != "" {
		tx = tx.Where("department = ?", department)
	}
	if year != "" {
		tx = tx.Where("academic_year = ?", year)
	}

	var divisions []string
	if err := tx.Distinct().Pluck("division", &divisions).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"divisions": divisions})
}

// GET /attendance/sessions/:id
// Session detail: joined records, the aggregate, and the batch-wise
// absentee grouping against the division's sub-batch definitions and
// GFM allocations.
func (h *AttendanceHandler) Get(c echo.Context) error {
	var session models.AttendanceSession
	if err := database.DB.First(&session, "id = ?", c.Param("id")).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}

	records, err := loadSessionRecordViews(session.ID)
	if err != nil {
		return dbError(c, err)
	}

	defs, err := loadBatchDefinitions(session.Department, session.Class, session.Division)
	if err != nil {
		return dbError(c, err)
	}

	type allocation struct {
		BatchName string `json:"batch_name"`
		Class     string `json:"-"`
		GfmName   string `json:"gfm_name"`
	}
	var allocRows []allocation
	database.DB.Table("teacher_batch_configs AS cfg").
		Select("cfg.batch_name, cfg.class, p.full_name AS gfm_name").
		Joins("LEFT JOIN profiles p ON p.id = cfg.teacher_id").
		Where("cfg.department = ? AND cfg.division = ?",
			session.Department, session.Division).
		Scan(&allocRows)
	// config year labels vary the same way definition labels do
	allocs := make([]allocation, 0, len(allocRows))
	for _, a := range allocRows {
		if roster.SameYear(a.Class, session.Class) {
			allocs = append(allocs, a)
		}
	}

	batches := make([]roster.SubBatch, 0, len(defs))
	for _, d := range defs {
		batches = append(batches, roster.SubBatch{
			Name:  d.SubBatch,
			Range: roster.Range{From: d.RbtFrom, To: d.RbtTo},
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"session":     session,
		"records":     records,
		"summary":     roster.Aggregate(records),
		"batch_wise":  roster.GroupAbsentees(records, batches),
		"allocations": allocs,
	})
}

// DELETE /attendance/sessions/:id
func (h *AttendanceHandler) Delete(c echo.Context) error {
	var session models.AttendanceSession
	if err := database.DB.First(&session, "id = ?", c.Param("id")).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}
	if !sessionDeletable(session.CreatedAt, time.Now()) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "DELETE_WINDOW_EXPIRED"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.AttendanceRecord{}, "session_id = ?", session.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
	if err != nil {
		return dbError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// loadSessionRecordViews joins a session's records with the roster for
// roll numbers and names.
func loadSessionRecordViews(sessionID string) ([]roster.Record, error) {
	var rows []roster.Record
	err := database.DB.Table("attendance_records AS r").
		Select("r.id AS record_id, r.student_prn AS prn, COALESCE(s.roll_no, '') AS roll_no, COALESCE(s.full_name, '') AS full_name, r.status, r.remark").
		Joins("LEFT JOIN students s ON s.prn = r.student_prn").
		Where("r.session_id = ?", sessionID).
		Order("r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []roster.Record{}
	}
	return rows, nil
}
