package models

import (
	"time"

	"gorm.io/gorm"
)

type Hospital struct {
	gorm.Model
	UserID                     uint   `gorm:"uniqueIndex;not null"`
	HospitalName               string `gorm:"not null"`
	HospitalType               string
	RegistrationNumberHospital string
	City                       string
	State                      string
	PersonName                 string
	PersonEmail                string
	Website                    string
	VerificationStatus         string `gorm:"default:'not_submitted'"`
	VerificationSubmittedAt    *time.Time
}

// HospitalDocument is one uploaded verification document. A hospital keeps at
// most one document per type; re-uploads overwrite the stored file.
type HospitalDocument struct {
	gorm.Model
	HospitalID   uint   `gorm:"not null;uniqueIndex:idx_hospital_doc_type"`
	DocumentType string `gorm:"not null;uniqueIndex:idx_hospital_doc_type"`
	FilePath     string `gorm:"not null"`
	UploadedAt   time.Time
}

// Document types accepted for hospital verification.
var HospitalDocumentTypes = []string{"registration", "authorization", "address", "gst", "nabh"}

// RequiredHospitalDocuments must all be uploaded before a hospital can be
// sent for verification.
var RequiredHospitalDocuments = []string{"registration", "authorization", "address"}

func IsValidHospitalDocumentType(t string) bool {
	for _, allowed := range HospitalDocumentTypes {
		if t == allowed {
			return true
		}
	}
	return false
}
