package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

func TestSessionDeletable(t *testing.T) {
	now := time.Now()

	assert.True(t, sessionDeletable(now, now))
	assert.True(t, sessionDeletable(now.Add(-time.Hour), now))
	assert.True(t, sessionDeletable(now.Add(-23*time.Hour-59*time.Minute), now))

	assert.False(t, sessionDeletable(now.Add(-24*time.Hour), now))
	assert.False(t, sessionDeletable(now.Add(-48*time.Hour), now))
}

func TestLocalDate(t *testing.T) {
	d := time.Date(2026, 3, 7, 23, 15, 0, 0, time.Local)
	assert.Equal(t, "2026-03-07", localDate(d))
}

func TestSessionExists(t *testing.T) {
	existing := []models.AttendanceSession{{
		Date:         "2026-03-07",
		Department:   "Computer Engineering",
		AcademicYear: "SE",
		Division:     "A",
	}}

	dup := models.AttendanceSession{
		Date:         "2026-03-07",
		Department:   "Computer Engineering",
		AcademicYear: "SE",
		Division:     "A",
	}
	assert.True(t, sessionExists(existing, dup))

	// year and division labels compare canonically, not byte-wise
	dup.AcademicYear = "Second Year"
	dup.Division = "A2"
	assert.True(t, sessionExists(existing, dup))

	other := dup
	other.Division = "B"
	assert.False(t, sessionExists(existing, other))

	other = dup
	other.Date = "2026-03-08"
	assert.False(t, sessionExists(existing, other))

	other = dup
	other.AcademicYear = "Third Year"
	assert.False(t, sessionExists(existing, other))

	assert.False(t, sessionExists(nil, dup))
}

func TestSessionExistsMapsToConflict(t *testing.T) {
	// the sentinel the submit transaction returns renders as 409
	assert.Equal(t, http.StatusConflict, errSessionExists.Code)
}
