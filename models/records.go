package models

import "time"

// Verification lifecycle shared by fee, activity, achievement and
// internship rows: students upload, teachers/admins verify.
const (
	VerifyPending  = "Pending"
	VerifyVerified = "Verified"
	VerifyRejected = "Rejected"
)

type FeePayment struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Prn                string    `json:"prn" gorm:"size:20;index;not null"`
	AcademicYear       string    `json:"academic_year" gorm:"size:10;not null"`
	InstallmentNumber  int       `json:"installment_number" gorm:"not null;default:1"`
	TotalFee           float64   `json:"total_fee"`
	AmountPaid         float64   `json:"amount_paid"`
	RemainingBalance   float64   `json:"remaining_balance"`
	PaymentDate        string    `json:"payment_date" gorm:"size:10"` // YYYY-MM-DD
	PaymentMode        string    `json:"payment_mode" gorm:"size:20"`
	ReceiptURI         string    `json:"receipt_uri" gorm:"type:text"`
	VerificationStatus string    `json:"verification_status" gorm:"size:20;default:'Pending'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type StudentActivity struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Prn                string    `json:"prn" gorm:"size:20;index;not null"`
	Type               string    `json:"type" gorm:"size:30;not null"` // Co-curricular | Extra-curricular
	ActivityName       string    `json:"activity_name" gorm:"size:120;not null"`
	ActivityDate       string    `json:"activity_date" gorm:"size:10"`
	CertificateURI     string    `json:"certificate_uri" gorm:"type:text"`
	VerificationStatus string    `json:"verification_status" gorm:"size:20;default:'Pending'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Achievement struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Prn                string    `json:"prn" gorm:"size:20;index;not null"`
	Type               string    `json:"type" gorm:"size:30"`
	AchievementName    string    `json:"achievement_name" gorm:"size:120;not null"`
	AchievementDate    string    `json:"achievement_date" gorm:"size:10"`
	CertificateURI     string    `json:"certificate_uri" gorm:"type:text"`
	VerificationStatus string    `json:"verification_status" gorm:"size:20;default:'Pending'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Internship struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Prn                string    `json:"prn" gorm:"size:20;index;not null"`
	CompanyName        string    `json:"company_name" gorm:"size:120;not null"`
	Role               string    `json:"role" gorm:"size:80"`
	Duration           int       `json:"duration"` // months
	InternshipType     string    `json:"internship_type" gorm:"size:30"`
	CertificateURI     string    `json:"certificate_uri" gorm:"type:text"`
	VerificationStatus string    `json:"verification_status" gorm:"size:20;default:'Pending'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type AcademicRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Prn        string    `json:"prn" gorm:"size:20;index;not null"`
	Semester   int       `json:"semester" gorm:"not null"`
	CourseCode string    `json:"course_code" gorm:"size:20;not null"`
	CourseName string    `json:"course_name" gorm:"size:120;not null"`
	MseMarks   float64   `json:"mse_marks"`
	EseMarks   float64   `json:"ese_marks"`
	Grade      string    `json:"grade" gorm:"size:3"`
	Sgpa       float64   `json:"sgpa"`
	Cgpa       float64   `json:"cgpa"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
