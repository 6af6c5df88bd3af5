package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

type InternshipHandler struct{}

func NewInternshipHandler() *InternshipHandler { return &InternshipHandler{} }

type internshipReq struct {
	CompanyName    string `json:"company_name" validate:"required"`
	Role           string `json:"role"`
	Duration       int    `json:"duration" validate:"min=0"`
	InternshipType string `json:"internship_type"`
	CertificateURI string `json:"certificate_uri"`
}

// GET /students/:prn/internships
func (h *InternshipHandler) List(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var rows []models.Internship
	if err := database.DB.Where("prn = ?", prn).Order("created_at DESC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /students/:prn/internships
func (h *InternshipHandler) Create(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var req internshipReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	row := models.Internship{
		Prn:                prn,
		CompanyName:        req.CompanyName,
		Role:               req.Role,
		Duration:           req.Duration,
		InternshipType:     req.InternshipType,
		CertificateURI:     req.CertificateURI,
		VerificationStatus: models.VerifyPending,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// DELETE /internships/:id
func (h *InternshipHandler) Delete(c echo.Context) error {
	var row models.Internship
	if err := database.DB.First(&row, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}
	if getRole(c) == "student" && (row.Prn != getPrn(c) || row.VerificationStatus != models.VerifyPending) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	if err := database.DB.Delete(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PUT /internships/:id/verify
func (h *InternshipHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	var row models.Internship
	if err := database.DB.First(&row, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}
	if err := database.DB.Model(&row).Update("verification_status", req.Status).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}
