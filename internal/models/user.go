package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Verification statuses shared by users and hospitals.
const (
	VerificationNotSubmitted = "not_submitted"
	VerificationPending      = "pending"
	VerificationApproved     = "approved"
	VerificationRejected     = "rejected"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null" json:"-"`
	Name                string `gorm:"not null"`
	Phone               string
	Role                string `gorm:"default:'doctor'"` // doctor | hospital | admin
	Designation         string
	Specialization      string
	RegistrationNumber  string
	RegistrationCouncil string
	YearsOfExperience   string
	HospitalAffiliation string
	Qualifications      pq.StringArray `gorm:"type:text[]"`
	Skills              pq.StringArray `gorm:"type:text[]"`
	Bio                 string
	ProfileCompleted    bool   `gorm:"default:false"`
	LicenseDocURL       string // storage key or full public URL
	IDDocURL            string
	Verified            bool   `gorm:"default:false"`
	VerificationStatus  string `gorm:"default:'not_submitted'"`
	TokenVersion        int    `gorm:"default:1"`
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
