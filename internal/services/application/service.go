package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/services/mailer"
	"docspace/internal/services/notification"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrJobClosed           = errors.New("job is no longer open")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotJobOwner         = errors.New("application belongs to another hospital's job")
)

type Service interface {
	Apply(userID, jobID uint) (*models.JobApplication, error)
	ListForJob(hospitalUserID, jobID uint) ([]models.JobApplication, error)
	ListForUser(userID uint) ([]models.JobApplication, error)
	Approve(ctx context.Context, hospitalUserID, applicationID uint, interviewDate time.Time) error
	Reject(ctx context.Context, hospitalUserID, applicationID uint) error
}

type service struct {
	apps          repositories.ApplicationRepository
	jobs          repositories.JobRepository
	hospitals     repositories.HospitalRepository
	notifications *notification.Service
	mail          mailer.Service
}

func NewService(
	apps repositories.ApplicationRepository,
	jobs repositories.JobRepository,
	hospitals repositories.HospitalRepository,
	notifications *notification.Service,
	mail mailer.Service,
) Service {
	return &service{
		apps:          apps,
		jobs:          jobs,
		hospitals:     hospitals,
		notifications: notifications,
		mail:          mail,
	}
}

func (s *service) Apply(userID, jobID uint) (*models.JobApplication, error) {
	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if job.Status != "open" {
		return nil, ErrJobClosed
	}

	app := &models.JobApplication{
		JobID:  jobID,
		UserID: userID,
		Status: "pending",
	}
	if err := s.apps.Create(app); err != nil {
		if errors.Is(err, repositories.ErrAlreadyApplied) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return app, nil
}

func (s *service) ListForJob(hospitalUserID, jobID uint) ([]models.JobApplication, error) {
	hospital, err := s.hospitals.GetByUserID(hospitalUserID)
	if err != nil {
		return nil, ErrNotJobOwner
	}
	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if job.HospitalID != hospital.ID {
		return nil, ErrNotJobOwner
	}
	return s.apps.ListByJob(jobID)
}

func (s *service) ListForUser(userID uint) ([]models.JobApplication, error) {
	return s.apps.ListByUser(userID)
}

// Approve schedules an interview: updates the application, notifies the
// applicant, and queues the interview email.
func (s *service) Approve(ctx context.Context, hospitalUserID, applicationID uint, interviewDate time.Time) error {
	app, hospital, err := s.ownedApplication(hospitalUserID, applicationID)
	if err != nil {
		return err
	}

	if err := s.apps.SetStatus(applicationID, "approved", &interviewDate); err != nil {
		return err
	}

	formatted := interviewDate.Format("January 2, 2006")
	jobTitle := app.Job.Title
	s.notifications.Notify(app.UserID, "job",
		"Application Approved",
		fmt.Sprintf("Your application for %q has been approved! Interview date: %s", jobTitle, formatted),
		fmt.Sprintf("/jobs/view/%d", app.JobID),
	)

	return s.mail.EnqueueInterview(ctx, app.User.Email, mailer.InterviewEmail{
		UserName:      app.User.Name,
		JobTitle:      jobTitle,
		HospitalName:  hospital.HospitalName,
		InterviewDate: formatted,
		PersonName:    hospital.PersonName,
		PersonEmail:   hospital.PersonEmail,
	})
}

func (s *service) Reject(ctx context.Context, hospitalUserID, applicationID uint) error {
	app, hospital, err := s.ownedApplication(hospitalUserID, applicationID)
	if err != nil {
		return err
	}

	if err := s.apps.SetStatus(applicationID, "rejected", nil); err != nil {
		return err
	}

	jobTitle := app.Job.Title
	s.notifications.Notify(app.UserID, "job",
		"Application Rejected",
		fmt.Sprintf("Your application for %q has been rejected.", jobTitle),
		fmt.Sprintf("/jobs/view/%d", app.JobID),
	)

	return s.mail.EnqueueRejection(ctx, app.User.Email, mailer.RejectionEmail{
		UserName:     app.User.Name,
		JobTitle:     jobTitle,
		HospitalName: hospital.HospitalName,
	})
}

// ownedApplication loads the application and checks it belongs to one of the
// requesting hospital's jobs.
func (s *service) ownedApplication(hospitalUserID, applicationID uint) (*models.JobApplication, *models.Hospital, error) {
	hospital, err := s.hospitals.GetByUserID(hospitalUserID)
	if err != nil {
		return nil, nil, ErrNotJobOwner
	}

	app, err := s.apps.GetByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrApplicationNotFound
		}
		return nil, nil, err
	}
	if app.Job == nil || app.Job.HospitalID != hospital.ID {
		return nil, nil, ErrNotJobOwner
	}
	if app.User == nil {
		return nil, nil, ErrApplicationNotFound
	}
	return app, hospital, nil
}
