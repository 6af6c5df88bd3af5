package models

import "time"

// Profile is an authenticated account. Students additionally carry a PRN
// linking them to their roster row.
type Profile struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	Email             string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password          string    `json:"-" gorm:"not null"` // bcrypt hash
	Role              string    `json:"role" gorm:"size:20;not null;index"` // student | teacher | admin | attendance_taker
	FullName          string    `json:"full_name" gorm:"size:120"`
	Department        string    `json:"department" gorm:"size:60"`
	Phone             string    `json:"phone" gorm:"size:15"`
	Prn               string    `json:"prn" gorm:"size:20;index"`
	IsProfileComplete bool      `json:"is_profile_complete" gorm:"not null;default:false"`
	FirstLogin        bool      `json:"first_login" gorm:"not null;default:true"`
	LastLogin         *time.Time `json:"last_login"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PasswordResetToken struct {
	Token     string    `json:"token" gorm:"primaryKey;size:36"`
	ProfileID string    `json:"profile_id" gorm:"size:36;index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}
