package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

// ActivityHandler covers co-/extra-curricular activities and
// achievements, which share the upload-then-verify lifecycle.
type ActivityHandler struct{}

func NewActivityHandler() *ActivityHandler { return &ActivityHandler{} }

type activityReq struct {
	Type           string `json:"type" validate:"required,oneof=Co-curricular Extra-curricular"`
	ActivityName   string `json:"activity_name" validate:"required"`
	ActivityDate   string `json:"activity_date"`
	CertificateURI string `json:"certificate_uri"`
}

type achievementReq struct {
	Type            string `json:"type"`
	AchievementName string `json:"achievement_name" validate:"required"`
	AchievementDate string `json:"achievement_date"`
	CertificateURI  string `json:"certificate_uri"`
}

// GET /students/:prn/activities
func (h *ActivityHandler) ListActivities(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var rows []models.StudentActivity
	if err := database.DB.Where("prn = ?", prn).Order("created_at DESC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /students/:prn/activities
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	row := models.StudentActivity{
		Prn:                prn,
		Type:               req.Type,
		ActivityName:       req.ActivityName,
		ActivityDate:       req.ActivityDate,
		CertificateURI:     req.CertificateURI,
		VerificationStatus: models.VerifyPending,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// PUT /activities/:id/verify
func (h *ActivityHandler) VerifyActivity(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	var row models.StudentActivity
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

// DELETE /activities/:id
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	var row models.StudentActivity
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

// GET /students/:prn/achievements
func (h *ActivityHandler) ListAchievements(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var rows []models.Achievement
	if err := database.DB.Where("prn = ?", prn).Order("created_at DESC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /students/:prn/achievements
func (h *ActivityHandler) CreateAchievement(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var req achievementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	row := models.Achievement{
		Prn:                prn,
		Type:               req.Type,
		AchievementName:    req.AchievementName,
		AchievementDate:    req.AchievementDate,
		CertificateURI:     req.CertificateURI,
		VerificationStatus: models.VerifyPending,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// DELETE /achievements/:id
func (h *ActivityHandler) DeleteAchievement(c echo.Context) error {
	var row models.Achievement
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

// PUT /achievements/:id/verify
func (h *ActivityHandler) VerifyAchievement(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	var row models.Achievement
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
