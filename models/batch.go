package models

import "time"

// Batch config lifecycle: created by a GFM, approved or rejected by an
// admin; any edit after approval drops the status back to Pending.
const (
	BatchStatusPending  = "Pending"
	BatchStatusApproved = "Approved"
	BatchStatusRejected = "Rejected"
)

// TeacherBatchConfig is the roll-number range a GFM mentors, one row per
// teacher. RbtFrom/RbtTo are string endpoints whose trailing digits
// define the numeric range.
type TeacherBatchConfig struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TeacherID       string    `json:"teacher_id" gorm:"size:36;uniqueIndex;not null"`
	Department      string    `json:"department" gorm:"size:60;not null"`
	Class           string    `json:"class" gorm:"size:20;not null"` // year label, e.g. "SE" or "Second Year"
	Division        string    `json:"division" gorm:"size:5;not null"`
	AcademicYear    string    `json:"academic_year" gorm:"size:10"` // e.g. "2025-26"
	BatchName       string    `json:"batch_name" gorm:"size:10"`    // sub-batch label, e.g. "A2"
	RbtFrom         string    `json:"rbt_from" gorm:"size:20;not null"`
	RbtTo           string    `json:"rbt_to" gorm:"size:20;not null"`
	Status          string    `json:"status" gorm:"size:10;not null;default:'Pending'"`
	RejectionReason string    `json:"rejection_reason" gorm:"type:text"`
	DecidedBy       string    `json:"decided_by" gorm:"size:36"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BatchDefinition is an admin-managed sub-batch split of a division
// (A1/A2/A3) used for absentee grouping and sub-batch rosters.
type BatchDefinition struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Department string    `json:"department" gorm:"size:60;not null;index:idx_batch_def_scope"`
	Class      string    `json:"class" gorm:"size:20;not null;index:idx_batch_def_scope"`
	Division   string    `json:"division" gorm:"size:5;not null;index:idx_batch_def_scope"`
	SubBatch   string    `json:"sub_batch" gorm:"size:10;not null"` // "A1", "A2", ...
	RbtFrom    string    `json:"rbt_from" gorm:"size:20;not null"`
	RbtTo      string    `json:"rbt_to" gorm:"size:20;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
