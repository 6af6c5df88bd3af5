package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
	"github.com/TheVinit/GFM-record-management-app-sub000/roster"
)

// BatchConfigHandler manages the GFM-side batch range configuration and
// its admin approval queue.
type BatchConfigHandler struct{}

func NewBatchConfigHandler() *BatchConfigHandler { return &BatchConfigHandler{} }

type batchConfigReq struct {
	Department   string `json:"department" validate:"required"`
	Class        string `json:"class" validate:"required"`
	Division     string `json:"division" validate:"required"`
	AcademicYear string `json:"academic_year"`
	BatchName    string `json:"batch_name"`
	RbtFrom      string `json:"rbt_from" validate:"required"`
	RbtTo        string `json:"rbt_to" validate:"required"`
}

// GET /gfm/batch-config
func (h *BatchConfigHandler) Mine(c echo.Context) error {
	cfg, err := batchConfigFor(getUserID(c))
	if err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "BATCH_NOT_CONFIGURED"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// PUT /gfm/batch-config
// Creates or replaces the caller's config. Any change resets the status
// to Pending so an admin reviews the new range.
func (h *BatchConfigHandler) Upsert(c echo.Context) error {
	var req batchConfigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}
	if _, ok := roster.TailSeq(req.RbtFrom); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_RANGE"})
	}
	if _, ok := roster.TailSeq(req.RbtTo); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_RANGE"})
	}

	teacherID := getUserID(c)
	var cfg models.TeacherBatchConfig
	err := database.DB.Where("teacher_id = ?", teacherID).First(&cfg).Error
	switch {
	case err == nil:
		// edit: overwrite and drop back to the review queue
		cfg.Department = req.Department
		cfg.Class = req.Class
		cfg.Division = roster.MainDivision(req.Division)
		cfg.AcademicYear = req.AcademicYear
		cfg.BatchName = req.BatchName
		cfg.RbtFrom = req.RbtFrom
		cfg.RbtTo = req.RbtTo
		cfg.Status = models.BatchStatusPending
		cfg.RejectionReason = ""
		cfg.DecidedBy = ""
		if err := database.DB.Save(&cfg).Error; err != nil {
			return dbError(c, err)
		}
		return c.JSON(http.StatusOK, cfg)
	case kindOf(err) == errNotFound:
		cfg = models.TeacherBatchConfig{
			TeacherID:    teacherID,
			Department:   req.Department,
			Class:        req.Class,
			Division:     roster.MainDivision(req.Division),
			AcademicYear: req.AcademicYear,
			BatchName:    req.BatchName,
			RbtFrom:      req.RbtFrom,
			RbtTo:        req.RbtTo,
			Status:       models.BatchStatusPending,
		}
		if err := database.DB.Create(&cfg).Error; err != nil {
			return dbError(c, err)
		}
		return c.JSON(http.StatusCreated, cfg)
	default:
		return dbError(c, err)
	}
}

// GET /gfm/batch-config/roster
// Preview of the students the caller's configured range resolves to.
func (h *BatchConfigHandler) Roster(c echo.Context) error {
	cfg, err := batchConfigFor(getUserID(c))
	if err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "BATCH_NOT_CONFIGURED"})
		}
		return dbError(c, err)
	}

	rows, err := loadDivisionRoster(cfg.Department, cfg.Class, cfg.Division)
	if err != nil {
		return dbError(c, err)
	}
	pool := make([]roster.Student, 0, len(rows))
	for _, s := range rows {
		pool = append(pool, roster.Student{
			Prn: s.Prn, RollNo: s.RollNo, FullName: s.FullName,
			Branch: s.Branch, YearOfStudy: s.YearOfStudy, Division: s.Division,
		})
	}
	batch := roster.ResolveBatch(pool, roster.Config{
		Department: cfg.Department,
		Class:      cfg.Class,
		Division:   cfg.Division,
		RbtFrom:    cfg.RbtFrom,
		RbtTo:      cfg.RbtTo,
	})

	return c.JSON(http.StatusOK, map[string]any{
		"config":   cfg,
		"students": batch,
		"count":    len(batch),
	})
}

// GET /admin/batch-configs?status=
func (h *BatchConfigHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.TeacherBatchConfig{})
	if status := c.QueryParam("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}

	type row struct {
		models.TeacherBatchConfig
		TeacherName  string `json:"teacher_name"`
		TeacherEmail string `json:"teacher_email"`
	}
	var rows []row
	err := tx.Select("teacher_batch_configs.*, p.full_name AS teacher_name, p.email AS teacher_email").
		Joins("LEFT JOIN profiles p ON p.id = teacher_batch_configs.teacher_id").
		Order("teacher_batch_configs.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type decideBatchReq struct {
	Reason string `json:"reason"`
}

// POST /admin/batch-configs/:id/approve
func (h *BatchConfigHandler) Approve(c echo.Context) error {
	return h.decide(c, models.BatchStatusApproved)
}

// POST /admin/batch-configs/:id/reject
func (h *BatchConfigHandler) Reject(c echo.Context) error {
	return h.decide(c, models.BatchStatusRejected)
}

func (h *BatchConfigHandler) decide(c echo.Context, status string) error {
	var req decideBatchReq
	_ = c.Bind(&req)
	if status == models.BatchStatusRejected && req.Reason == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "REASON_REQUIRED"})
	}

	var cfg models.TeacherBatchConfig
	if err := database.DB.First(&cfg, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}

	updates := map[string]any{
		"status":     status,
		"decided_by": getUserID(c),
		"updated_at": time.Now(),
	}
	if status == models.BatchStatusRejected {
		updates["rejection_reason"] = req.Reason
	} else {
		updates["rejection_reason"] = ""
	}
	if err := database.DB.Model(&cfg).Updates(updates).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}
