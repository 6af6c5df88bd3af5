package models

import "time"

type Student struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Prn              string    `json:"prn" gorm:"size:20;uniqueIndex;not null"`
	RollNo           string    `json:"roll_no" gorm:"size:20;index"`
	FullName         string    `json:"full_name" gorm:"size:120;not null"`
	Email            string    `json:"email" gorm:"size:120;uniqueIndex"`
	Phone            string    `json:"phone" gorm:"size:15"`
	ParentMobile     string    `json:"parent_mobile" gorm:"size:15"`
	Branch           string    `json:"branch" gorm:"size:60;not null;index"`
	YearOfStudy      string    `json:"year_of_study" gorm:"size:20;not null;index"`
	Division         string    `json:"division" gorm:"size:5;not null;index"` // main letter, optional sub-batch digit ("A", "A2")
	Gender           string    `json:"gender" gorm:"size:10"`
	Dob              string    `json:"dob" gorm:"size:10"` // YYYY-MM-DD
	Category         string    `json:"category" gorm:"size:20"`
	Aadhar           string    `json:"aadhar" gorm:"size:12"`
	PermanentAddress string    `json:"permanent_address" gorm:"type:text"`
	TemporaryAddress string    `json:"temporary_address" gorm:"type:text"`
	FatherName       string    `json:"father_name" gorm:"size:120"`
	MotherName       string    `json:"mother_name" gorm:"size:120"`
	FatherPhone      string    `json:"father_phone" gorm:"size:15"`
	AnnualIncome     string    `json:"annual_income" gorm:"size:20"`
	AdmissionType    string    `json:"admission_type" gorm:"size:10"` // Regular | DSE
	PhotoURI         string    `json:"photo_uri" gorm:"type:text"`
	VerificationStatus string  `json:"verification_status" gorm:"size:20;default:'Pending'"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
