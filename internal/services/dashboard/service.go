// Package dashboard aggregates per-role summary counts for the landing page.
package dashboard

import (
	"errors"
	"time"

	"docspace/internal/repositories"
)

var ErrHospitalNotFound = errors.New("hospital profile not found")

// DoctorStats summarizes a doctor's activity.
type DoctorStats struct {
	TotalApplications   int64  `json:"total_applications"`
	PendingApplications int64  `json:"pending_applications"`
	Interviews          int64  `json:"interviews"`
	VerificationStatus  string `json:"verification_status"`
	ProfileCompleted    bool   `json:"profile_completed"`
	UnreadNotifications int64  `json:"unread_notifications"`
}

// HospitalStats summarizes a hospital's hiring activity.
type HospitalStats struct {
	TotalJobs           int64  `json:"total_jobs"`
	OpenJobs            int64  `json:"open_jobs"`
	RecentApplications  int64  `json:"recent_applications"`
	VerificationStatus  string `json:"verification_status"`
	UnreadNotifications int64  `json:"unread_notifications"`
}

type Service struct {
	users         repositories.UserRepository
	hospitals     repositories.HospitalRepository
	jobs          repositories.JobRepository
	applications  repositories.ApplicationRepository
	notifications repositories.NotificationRepository
}

func NewService(
	users repositories.UserRepository,
	hospitals repositories.HospitalRepository,
	jobs repositories.JobRepository,
	applications repositories.ApplicationRepository,
	notifications repositories.NotificationRepository,
) *Service {
	return &Service{
		users:         users,
		hospitals:     hospitals,
		jobs:          jobs,
		applications:  applications,
		notifications: notifications,
	}
}

func (s *Service) DoctorStats(userID uint) (*DoctorStats, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.applications.CountByUserAndStatus(userID, "pending", "approved", "rejected")
	if err != nil {
		return nil, err
	}
	pending, err := s.applications.CountByUserAndStatus(userID, "pending")
	if err != nil {
		return nil, err
	}
	interviews, err := s.applications.CountByUserAndStatus(userID, "approved")
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(userID)
	if err != nil {
		return nil, err
	}

	return &DoctorStats{
		TotalApplications:   total,
		PendingApplications: pending,
		Interviews:          interviews,
		VerificationStatus:  user.VerificationStatus,
		ProfileCompleted:    user.ProfileCompleted,
		UnreadNotifications: unread,
	}, nil
}

// HospitalStats counts the hospital's jobs and applications received across
// them in the last seven days.
func (s *Service) HospitalStats(userID uint) (*HospitalStats, error) {
	hospital, err := s.hospitals.GetByUserID(userID)
	if err != nil {
		return nil, ErrHospitalNotFound
	}

	jobs, err := s.jobs.ListTitles(hospital.ID)
	if err != nil {
		return nil, err
	}
	jobIDs := make([]uint, 0, len(jobs))
	var open int64
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
		if job.Status == "open" {
			open++
		}
	}

	since := time.Now().AddDate(0, 0, -7)
	recent, err := s.applications.CountByJobIDsSince(jobIDs, since)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(userID)
	if err != nil {
		return nil, err
	}

	return &HospitalStats{
		TotalJobs:           int64(len(jobs)),
		OpenJobs:            open,
		RecentApplications:  recent,
		VerificationStatus:  hospital.VerificationStatus,
		UnreadNotifications: unread,
	}, nil
}
