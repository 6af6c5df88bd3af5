package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
	"github.com/TheVinit/GFM-record-management-app-sub000/roster"
)

// ReportHandler builds and serves the GFM's daily attendance report
// snapshots.
type ReportHandler struct{}

func NewReportHandler() *ReportHandler { return &ReportHandler{} }

// absentDetail is one absent student in the persisted snapshot.
type absentDetail struct {
	Prn         string `json:"prn"`
	RollNo      string `json:"roll_no"`
	FullName    string `json:"full_name"`
	Contacted   bool   `json:"contacted"`
	PreInformed bool   `json:"pre_informed"`
	Remark      string `json:"remark,omitempty"`
}

type generateReportReq struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

// POST /gfm/reports
// Computes the day snapshot live from the caller's batch and persists
// it: roster size, absentees, who was contacted, who had an approved
// pre-informed leave covering the date.
func (h *ReportHandler) Generate(c echo.Context) error {
	var req generateReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.Date == "" {
		req.Date = localDate(time.Now())
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

	session, err := findDivisionSession(req.Date, cfg)
	if err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NO_SESSION_FOR_DATE"})
		}
		return dbError(c, err)
	}

	all, err := loadSessionRecordViews(session.ID)
	if err != nil {
		return dbError(c, err)
	}
	batch := roster.FilterByRange(all, roster.Range{From: cfg.RbtFrom, To: cfg.RbtTo})

	absent := make([]roster.Record, 0)
	prns := make([]string, 0)
	for _, r := range batch {
		if r.Status == models.StatusAbsent {
			absent = append(absent, r)
			prns = append(prns, r.Prn)
		}
	}

	contacted := map[string]bool{}
	preInformed := map[string]bool{}
	if len(prns) > 0 {
		var followed []string
		database.DB.Model(&models.AttendanceFollowUp{}).
			Where("date = ? AND student_prn IN ?", req.Date, prns).
			Distinct().Pluck("student_prn", &followed)
		for _, p := range followed {
			contacted[p] = true
		}

		var covered []string
		database.DB.Model(&models.PreInformedAbsence{}).
			Where("status = ? AND student_prn IN ? AND start_date <= ? AND end_date >= ?",
				"Approved", prns, req.Date, req.Date).
			Distinct().Pluck("student_prn", &covered)
		for _, p := range covered {
			preInformed[p] = true
		}
	}

	details := make([]absentDetail, 0, len(absent))
	nContacted, nPreInformed := 0, 0
	for _, r := range absent {
		d := absentDetail{
			Prn: r.Prn, RollNo: r.RollNo, FullName: r.FullName,
			Contacted: contacted[r.Prn], PreInformed: preInformed[r.Prn],
			Remark: r.Remark,
		}
		if d.Contacted {
			nContacted++
		}
		if d.PreInformed {
			nPreInformed++
		}
		details = append(details, d)
	}
	detailJSON, _ := json.Marshal(details)

	report := models.AttendanceReport{
		ID:               uuid.NewString(),
		GfmID:            getUserID(c),
		Date:             req.Date,
		Department:       cfg.Department,
		Year:             roster.CanonicalYear(cfg.Class),
		Division:         cfg.Division,
		BatchRange:       cfg.RbtFrom + " - " + cfg.RbtTo,
		TotalStudents:    len(batch),
		TotalAbsent:      len(absent),
		TotalContacted:   nContacted,
		TotalPreInformed: nPreInformed,
		Summary:          req.Summary,
		AbsentDetails:    datatypes.JSON(detailJSON),
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, report)
}

// GET /gfm/reports?from=&to=
func (h *ReportHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.AttendanceReport{}).Where("gfm_id = ?", getUserID(c))
	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		tx = tx.Where("date >= ?", from)
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		tx = tx.Where("date <= ?", to)
	}

	var rows []models.AttendanceReport
	if err := tx.Order("date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /gfm/reports/:id/pdf
func (h *ReportHandler) PDF(c echo.Context) error {
	var report models.AttendanceReport
	if err := database.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}
	if report.GfmID != getUserID(c) && getRole(c) != "admin" {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	var details []absentDetail
	_ = json.Unmarshal(report.AbsentDetails, &details)

	var gfm models.Profile
	database.DB.First(&gfm, "id = ?", report.GfmID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Daily Attendance Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	meta := [][2]string{
		{"Date", report.Date},
		{"GFM", gfm.FullName},
		{"Department", report.Department},
		{"Year / Division", report.Year + " / " + report.Division},
		{"Batch range", report.BatchRange},
	}
	for _, m := range meta {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, m[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, m[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf(
		"Students: %d    Absent: %d    Contacted: %d    Pre-informed: %d",
		report.TotalStudents, report.TotalAbsent, report.TotalContacted, report.TotalPreInformed,
	), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(details) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(25, 8, "Roll No", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 8, "PRN", "1", 0, "C", true, 0, "")
		pdf.CellFormat(70, 8, "Name", "1", 0, "C", true, 0, "")
		pdf.CellFormat(28, 8, "Contacted", "1", 0, "C", true, 0, "")
		pdf.CellFormat(27, 8, "Pre-informed", "1", 1, "C", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		yesNo := func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		}
		for _, d := range details {
			pdf.CellFormat(25, 7, d.RollNo, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 7, d.Prn, "1", 0, "C", false, 0, "")
			pdf.CellFormat(70, 7, d.FullName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(28, 7, yesNo(d.Contacted), "1", 0, "C", false, 0, "")
			pdf.CellFormat(27, 7, yesNo(d.PreInformed), "1", 1, "C", false, 0, "")
		}
	} else {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, "No absentees recorded.", "", 1, "L", false, 0, "")
	}

	if report.Summary != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, report.Summary, "", "L", false)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="attendance_report_%s.pdf"`, report.Date))
	c.Response().WriteHeader(http.StatusOK)
	if err := pdf.Output(c.Response()); err != nil {
		return err
	}
	return nil
}
