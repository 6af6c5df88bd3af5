package models

import "time"

// AttendanceFollowUp is a communication log entry for an absence: a call
// made by the GFM, with an optional report link. It never changes the
// attendance record by itself; the late-mark flip is a separate,
// explicit override on the record.
type AttendanceFollowUp struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	StudentPrn  string    `json:"student_prn" gorm:"size:20;index;not null"`
	GfmID       string    `json:"gfm_id" gorm:"size:36;index;not null"`
	Date        string    `json:"date" gorm:"size:10;not null"` // YYYY-MM-DD of the absence
	Type        string    `json:"type" gorm:"size:20;not null;default:'call'"`
	Reason      string    `json:"reason" gorm:"size:120;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ReportURL   string    `json:"report_url" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// PreInformedAbsence is a leave note filed by a student before the
// absence; GFM approval makes it count as pre-informed in reports.
type PreInformedAbsence struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	StudentPrn   string     `json:"student_prn" gorm:"size:20;index;not null"`
	Reason       string     `json:"reason" gorm:"type:text;not null"`
	StartDate    string     `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate      string     `json:"end_date" gorm:"size:10;not null"`
	DocumentURL  string     `json:"document_url" gorm:"type:text"`
	Status       string     `json:"status" gorm:"size:10;not null;default:'Pending'"`
	DecidedBy    string     `json:"decided_by" gorm:"size:36"`
	DecidedAt    *time.Time `json:"decided_at"`
	RejectReason string     `json:"reject_reason" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
