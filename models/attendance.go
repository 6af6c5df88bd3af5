package models

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// AttendanceSession is one submission for a (date, department, year,
// division) tuple. Sessions are locked at creation; records under a
// locked session change only through the GFM follow-up override.
type AttendanceSession struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	TeacherID    string    `json:"teacher_id" gorm:"size:36;index"`
	Date         string    `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	Department   string    `json:"department" gorm:"size:60;not null"`
	AcademicYear string    `json:"academic_year" gorm:"size:20;not null"`
	Class        string    `json:"class" gorm:"size:20"`
	Division     string    `json:"division" gorm:"size:5;not null"`
	BatchName    string    `json:"batch_name" gorm:"size:20"` // "Division A" or sub-batch label "A2"
	RbtFrom      string    `json:"rbt_from" gorm:"size:20"`
	RbtTo        string    `json:"rbt_to" gorm:"size:20"`
	Locked       bool      `json:"locked" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AttendanceRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SessionID     string    `json:"session_id" gorm:"size:36;index;not null"`
	StudentPrn    string    `json:"student_prn" gorm:"size:20;index;not null"`
	Status        string    `json:"status" gorm:"size:10;not null"` // Present | Absent
	Remark        string    `json:"remark" gorm:"type:text"`
	ApprovedByGfm string    `json:"approved_by_gfm" gorm:"size:36"` // GFM who authorized a late-mark flip
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
