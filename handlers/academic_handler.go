package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

// AcademicHandler manages per-semester course marks. Rows are entered
// by teachers/admins; students get a read-only view of their own.
type AcademicHandler struct{}

func NewAcademicHandler() *AcademicHandler { return &AcademicHandler{} }

type academicRecordReq struct {
	Semester   int     `json:"semester" validate:"required,min=1,max=8"`
	CourseCode string  `json:"course_code" validate:"required"`
	CourseName string  `json:"course_name" validate:"required"`
	MseMarks   float64 `json:"mse_marks" validate:"min=0"`
	EseMarks   float64 `json:"ese_marks" validate:"min=0"`
	Grade      string  `json:"grade"`
	Sgpa       float64 `json:"sgpa" validate:"min=0,max=10"`
	Cgpa       float64 `json:"cgpa" validate:"min=0,max=10"`
}

// GET /students/:prn/academics?semester=
func (h *AcademicHandler) List(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	tx := database.DB.Where("prn = ?", prn)
	if sem := atoiOr(c.QueryParam("semester"), 0); sem > 0 {
		tx = tx.Where("semester = ?", sem)
	}
	var rows []models.AcademicRecord
	if err := tx.Order("semester ASC, course_code ASC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /students/:prn/academics
func (h *AcademicHandler) Create(c echo.Context) error {
	prn := c.Param("prn")
	if prn == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_PRN"})
	}
	var req academicRecordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	row := models.AcademicRecord{
		Prn:        prn,
		Semester:   req.Semester,
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		MseMarks:   req.MseMarks,
		EseMarks:   req.EseMarks,
		Grade:      req.Grade,
		Sgpa:       req.Sgpa,
		Cgpa:       req.Cgpa,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// PUT /academics/:id
func (h *AcademicHandler) Update(c echo.Context) error {
	var row models.AcademicRecord
	if err := database.DB.First(&row, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}

	var req academicRecordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	row.Semester = req.Semester
	row.CourseCode = req.CourseCode
	row.CourseName = req.CourseName
	row.MseMarks = req.MseMarks
	row.EseMarks = req.EseMarks
	row.Grade = req.Grade
	row.Sgpa = req.Sgpa
	row.Cgpa = req.Cgpa
	if err := database.DB.Save(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /academics/:id
func (h *AcademicHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.AcademicRecord{}, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		return dbError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
