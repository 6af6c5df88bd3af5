package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

// StaffHandler covers admin management of teacher / attendance-taker /
// admin accounts.
type StaffHandler struct{}

func NewStaffHandler() *StaffHandler { return &StaffHandler{} }

type createStaffReq struct {
	Email      string `json:"email" validate:"required,email"`
	FullName   string `json:"full_name" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=teacher admin attendance_taker"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Password   string `json:"password" validate:"omitempty,min=6"`
}

// GET /admin/staff?role=
func (h *StaffHandler) List(c echo.Context) error {
	role := strings.TrimSpace(c.QueryParam("role"))

	tx := database.DB.Model(&models.Profile{}).Where("role <> ?", "student")
	if role != "" {
		tx = tx.Where("role = ?", role)
	}

	var rows []models.Profile
	if err := tx.Order("full_name ASC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/staff
func (h *StaffHandler) Create(c echo.Context) error {
	var req createStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.Join(strings.Fields(req.FullName), " ")
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	// generated one-time password unless the admin supplied one
	password := req.Password
	oneTime := ""
	if password == "" {
		oneTime = uuid.NewString()[:8]
		password = oneTime
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	p := models.Profile{
		ID:         uuid.NewString(),
		Email:      req.Email,
		Password:   string(hash),
		Role:       req.Role,
		FullName:   req.FullName,
		Department: strings.TrimSpace(req.Department),
		Phone:      strings.TrimSpace(req.Phone),
		FirstLogin: true,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		if kindOf(err) == errDuplicate {
			return c.JSON(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS"})
		}
		return dbError(c, err)
	}

	out := map[string]any{"id": p.ID, "email": p.Email, "role": p.Role}
	if oneTime != "" {
		out["one_time_password"] = oneTime
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /admin/staff/:id/reset
func (h *StaffHandler) ResetPassword(c echo.Context) error {
	var p models.Profile
	if err := database.DB.First(&p, "id = ?", c.Param("id")).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}

	oneTime := uuid.NewString()[:8]
	hash, _ := bcrypt.GenerateFromPassword([]byte(oneTime), bcrypt.DefaultCost)
	if err := database.DB.Model(&p).Updates(map[string]any{
		"password":    string(hash),
		"first_login": true,
	}).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"one_time_password": oneTime})
}

// DELETE /admin/staff/:id
func (h *StaffHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == getUserID(c) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "CANNOT_DELETE_SELF"})
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TeacherBatchConfig{}, "teacher_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Profile{}, "id = ?", id).Error
	})
	if err != nil {
		return dbError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
