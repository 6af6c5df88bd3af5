package models

import (
	"time"

	"gorm.io/datatypes"
)

// AttendanceReport is a persisted day snapshot for one GFM batch:
// roster size, absentees, follow-up and pre-informed counts, plus the
// absent roll/name detail as JSON.
type AttendanceReport struct {
	ID               string         `json:"id" gorm:"primaryKey;size:36"`
	GfmID            string         `json:"gfm_id" gorm:"size:36;index;not null"`
	Date             string         `json:"date" gorm:"size:10;not null;index"`
	Department       string         `json:"department" gorm:"size:60;not null"`
	Year             string         `json:"year" gorm:"size:20;not null"`
	Division         string         `json:"division" gorm:"size:5;not null"`
	BatchRange       string         `json:"batch_range" gorm:"size:45"`
	TotalStudents    int            `json:"total_students"`
	TotalAbsent      int            `json:"total_absent"`
	TotalContacted   int            `json:"total_contacted"`
	TotalPreInformed int            `json:"total_pre_informed"`
	Summary          string         `json:"summary" gorm:"type:text"`
	AbsentDetails    datatypes.JSON `json:"absent_details"`
	CreatedAt        time.Time      `json:"created_at"`
}
