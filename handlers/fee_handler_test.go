package handlers

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestWriteFeeCSV(t *testing.T) {
	rows := []models.FeePayment{{
		Prn:                "RBT24CS101",
		AcademicYear:       "2025-26",
		InstallmentNumber:  1,
		TotalFee:           90000,
		AmountPaid:         45000,
		RemainingBalance:   45000,
		PaymentDate:        "2026-01-15",
		PaymentMode:        "UPI",
		VerificationStatus: models.VerifyVerified,
	}}

	var buf bytes.Buffer
	require.NoError(t, writeFeeCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "prn,academic_year,installment,total_fee,amount_paid,remaining,payment_date,mode,status", lines[0])
	assert.Equal(t, "RBT24CS101,2025-26,1,90000.00,45000.00,45000.00,2026-01-15,UPI,Verified", lines[1])
}

func TestWriteFeeCSVPropagatesWriteError(t *testing.T) {
	err := writeFeeCSV(failingWriter{}, []models.FeePayment{{Prn: "RBT24CS101"}})
	assert.Error(t, err)
}
