package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
	"github.com/TheVinit/GFM-record-management-app-sub000/roster"
)

// BatchDefinitionHandler is the admin CRUD for division sub-batch
// splits (A1/A2/A3 and their roll ranges).
type BatchDefinitionHandler struct{}

func NewBatchDefinitionHandler() *BatchDefinitionHandler { return &BatchDefinitionHandler{} }

type batchDefinitionReq struct {
	Department string `json:"department" validate:"required"`
	Class      string `json:"class" validate:"required"`
	Division   string `json:"division" validate:"required"`
	SubBatch   string `json:"sub_batch" validate:"required"`
	RbtFrom    string `json:"rbt_from" validate:"required"`
	RbtTo      string `json:"rbt_to" validate:"required"`
}

// GET /admin/batch-definitions?department=&class=&division=
func (h *BatchDefinitionHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.BatchDefinition{})
	if v := strings.TrimSpace(c.QueryParam("department")); v != "" {
		tx = tx.Where("department = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("class")); v != "" {
		tx = tx.Where("class = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("division")); v != "" {
		tx = tx.Where("division = ?", roster.MainDivision(v))
	}

	var rows []models.BatchDefinition
	if err := tx.Order("department, class, division, sub_batch").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/batch-definitions
func (h *BatchDefinitionHandler) Create(c echo.Context) error {
	var req batchDefinitionReq
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

	division := roster.MainDivision(req.Division)
	var count int64
	database.DB.Model(&models.BatchDefinition{}).
		Where("department = ? AND class = ? AND division = ? AND sub_batch = ?",
			req.Department, req.Class, division, req.SubBatch).
		Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "BATCH_EXISTS"})
	}

	def := models.BatchDefinition{
		Department: req.Department,
		Class:      req.Class,
		Division:   division,
		SubBatch:   req.SubBatch,
		RbtFrom:    req.RbtFrom,
		RbtTo:      req.RbtTo,
	}
	if err := database.DB.Create(&def).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, def)
}

// PUT /admin/batch-definitions/:id
func (h *BatchDefinitionHandler) Update(c echo.Context) error {
	var def models.BatchDefinition
	if err := database.DB.First(&def, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}

	var req batchDefinitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	def.Department = req.Department
	def.Class = req.Class
	def.Division = roster.MainDivision(req.Division)
	def.SubBatch = req.SubBatch
	def.RbtFrom = req.RbtFrom
	def.RbtTo = req.RbtTo
	if err := database.DB.Save(&def).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, def)
}

// DELETE /admin/batch-definitions/:id
func (h *BatchDefinitionHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.BatchDefinition{}, "id = ?", atoiOr(c.Param("id"), 0)).Error; err != nil {
		return dbError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
