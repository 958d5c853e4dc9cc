package models

import (
	"time"

	"gorm.io/gorm"
)

type Job struct {
	gorm.Model
	HospitalID         uint   `gorm:"index;not null"`
	Hospital           *Hospital
	Title              string `gorm:"not null"`
	Department         string
	JobType            string // full-time | part-time | contract
	ExperienceRequired string
	MinSalary          int
	MaxSalary          int
	Description        string `gorm:"not null"`
	Status             string `gorm:"default:'open'"` // open | closed
}

var AllowedJobTypes = []string{"full-time", "part-time", "contract"}

func IsValidJobType(t string) bool {
	for _, allowed := range AllowedJobTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

type JobApplication struct {
	gorm.Model
	JobID         uint `gorm:"not null;uniqueIndex:idx_job_applicant"`
	Job           *Job
	UserID        uint `gorm:"not null;uniqueIndex:idx_job_applicant"`
	User          *User
	Status        string `gorm:"default:'pending'"` // pending | approved | rejected
	InterviewDate *time.Time
}
