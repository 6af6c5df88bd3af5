package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

// AbsenceHandler manages pre-informed absence notes: students file
// them ahead of a leave, GFMs approve or reject.
type AbsenceHandler struct{}

func NewAbsenceHandler() *AbsenceHandler { return &AbsenceHandler{} }

type absenceReq struct {
	StudentPrn  string `json:"student_prn"`
	Reason      string `json:"reason" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	DocumentURL string `json:"document_url"`
}

// POST /absences
func (h *AbsenceHandler) Create(c echo.Context) error {
	var req absenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if getRole(c) == "student" {
		req.StudentPrn = getPrn(c)
	}
	if req.StudentPrn == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_PRN"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}
	if req.EndDate < req.StartDate {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
	}

	row := models.PreInformedAbsence{
		StudentPrn:  req.StudentPrn,
		Reason:      req.Reason,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DocumentURL: req.DocumentURL,
		Status:      "Pending",
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// GET /absences?status=&prn=&date=&page=&size=
func (h *AbsenceHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.PreInformedAbsence{})
	if getRole(c) == "student" {
		tx = tx.Where("student_prn = ?", getPrn(c))
	} else if prn := strings.TrimSpace(c.QueryParam("prn")); prn != "" {
		tx = tx.Where("student_prn = ?", prn)
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		tx = tx.Where("status = ?", status)
	}
	if date := strings.TrimSpace(c.QueryParam("date")); date != "" {
		tx = tx.Where("start_date <= ? AND end_date >= ?", date, date)
	}

	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	var total int64
	tx.Count(&total)

	var rows []models.PreInformedAbsence
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": rows, "page": page, "size": size, "total": total,
	})
}

// GET /absences/pending-count
func (h *AbsenceHandler) PendingCount(c echo.Context) error {
	var count int64
	if err := database.DB.Model(&models.PreInformedAbsence{}).
		Where("status = ?", "Pending").Count(&count).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"count": count})
}

type decideAbsenceReq struct {
	Reason string `json:"reason"`
}

// POST /absences/:id/approve
func (h *AbsenceHandler) Approve(c echo.Context) error {
	return h.decide(c, "Approved")
}

// POST /absences/:id/reject
func (h *AbsenceHandler) Reject(c echo.Context) error {
	return h.decide(c, "Rejected")
}

func (h *AbsenceHandler) decide(c echo.Context, status string) error {
	var req decideAbsenceReq
	_ = c.Bind(&req)
	if status == "Rejected" && strings.TrimSpace(req.Reason) == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "REASON_REQUIRED"})
	}

	var row models.PreInformedAbsence
	if err := database.DB.First(&row, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}
	if row.Status != "Pending" {
		return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_DECIDED"})
	}

	now := time.Now()
	updates := map[string]any{
		"status":     status,
		"decided_by": getUserID(c),
		"decided_at": &now,
	}
	if status == "Rejected" {
		updates["reject_reason"] = req.Reason
	}
	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}
