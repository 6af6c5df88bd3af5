package handlers

import (
	"encoding/csv"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

type FeeHandler struct{}

func NewFeeHandler() *FeeHandler { return &FeeHandler{} }

// resolvePrn maps a :prn path param to the PRN the caller may act on.
// Students are pinned to their own PRN regardless of the param.
func resolvePrn(c echo.Context) (string, bool) {
	prn := c.Param("prn")
	if getRole(c) == "student" {
		own := getPrn(c)
		if own == "" || (prn != "" && prn != own) {
			return "", false
		}
		return own, true
	}
	return prn, prn != ""
}

type feePaymentReq struct {
	AcademicYear      string  `json:"academic_year" validate:"required"`
	InstallmentNumber int     `json:"installment_number" validate:"min=1"`
	TotalFee          float64 `json:"total_fee" validate:"min=0"`
	AmountPaid        float64 `json:"amount_paid" validate:"min=0"`
	PaymentDate       string  `json:"payment_date"`
	PaymentMode       string  `json:"payment_mode"`
	ReceiptURI        string  `json:"receipt_uri"`
}

// GET /students/:prn/fees
func (h *FeeHandler) List(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var rows []models.FeePayment
	if err := database.DB.Where("prn = ?", prn).
		Order("academic_year DESC, installment_number ASC").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /students/:prn/fees
func (h *FeeHandler) Create(c echo.Context) error {
	prn, ok := resolvePrn(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var req feePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}
	if req.InstallmentNumber == 0 {
		req.InstallmentNumber = 1
	}

	row := models.FeePayment{
		Prn:                prn,
		AcademicYear:       req.AcademicYear,
		InstallmentNumber:  req.InstallmentNumber,
		TotalFee:           req.TotalFee,
		AmountPaid:         req.AmountPaid,
		RemainingBalance:   req.TotalFee - req.AmountPaid,
		PaymentDate:        req.PaymentDate,
		PaymentMode:        req.PaymentMode,
		ReceiptURI:         req.ReceiptURI,
		VerificationStatus: models.VerifyPending,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

type verifyReq struct {
	Status string `json:"status" validate:"required,oneof=Pending Verified Rejected"`
}

// PUT /fees/:id/verify
func (h *FeeHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	var row models.FeePayment
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

// DELETE /fees/:id
// Students may remove their own rows while still pending; staff may
// remove any.
func (h *FeeHandler) Delete(c echo.Context) error {
	var row models.FeePayment
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

// GET /admin/fees/export?academic_year=
func (h *FeeHandler) ExportCSV(c echo.Context) error {
	tx := database.DB.Model(&models.FeePayment{})
	if y := c.QueryParam("academic_year"); y != "" {
		tx = tx.Where("academic_year = ?", y)
	}
	var rows []models.FeePayment
	if err := tx.Order("prn, academic_year, installment_number").Find(&rows).Error; err != nil {
		return dbError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="fee_payments.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return writeFeeCSV(c.Response(), rows)
}

func writeFeeCSV(w io.Writer, rows []models.FeePayment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"prn", "academic_year", "installment", "total_fee", "amount_paid", "remaining", "payment_date", "mode", "status"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Prn, r.AcademicYear, strconv.Itoa(r.InstallmentNumber),
			strconv.FormatFloat(r.TotalFee, 'f', 2, 64),
			strconv.FormatFloat(r.AmountPaid, 'f', 2, 64),
			strconv.FormatFloat(r.RemainingBalance, 'f', 2, 64),
			r.PaymentDate, r.PaymentMode, r.VerificationStatus,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
