package job

import (
	"errors"

	"docspace/internal/models"
	"docspace/internal/repositories"

	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound    = errors.New("hospital not found")
	ErrHospitalNotVerified = errors.New("hospital must be verified to post jobs")
	ErrJobNotFound         = errors.New("job not found")
	ErrNotJobOwner         = errors.New("job belongs to another hospital")
	ErrInvalidJobType      = errors.New("invalid job type")
	ErrMissingFields       = errors.New("job title and description are required")
)

// PostInput is a job posting request.
type PostInput struct {
	Title              string `json:"title"`
	Department         string `json:"department"`
	JobType            string `json:"job_type"`
	ExperienceRequired string `json:"experience_required"`
	MinSalary          int    `json:"min_salary"`
	MaxSalary          int    `json:"max_salary"`
	Description        string `json:"description"`
}

type Service interface {
	Post(hospitalUserID uint, input PostInput) (*models.Job, error)
	Get(jobID uint) (*models.Job, error)
	List(filter repositories.JobFilter, offset, limit int) ([]models.Job, int64, error)
	ListTitles(hospitalUserID uint) ([]models.Job, error)
	Update(hospitalUserID, jobID uint, input PostInput) (*models.Job, error)
	Close(hospitalUserID, jobID uint) error
}

type service struct {
	jobs      repositories.JobRepository
	hospitals repositories.HospitalRepository
}

func NewService(jobs repositories.JobRepository, hospitals repositories.HospitalRepository) Service {
	return &service{jobs: jobs, hospitals: hospitals}
}

// Post creates a job opening. Only verified hospitals can post.
func (s *service) Post(hospitalUserID uint, input PostInput) (*models.Job, error) {
	hospital, err := s.hospitals.GetByUserID(hospitalUserID)
	if err != nil {
		return nil, ErrHospitalNotFound
	}
	if hospital.VerificationStatus != models.VerificationApproved {
		return nil, ErrHospitalNotVerified
	}

	if input.Title == "" || input.Description == "" {
		return nil, ErrMissingFields
	}
	if input.JobType != "" && !models.IsValidJobType(input.JobType) {
		return nil, ErrInvalidJobType
	}

	job := &models.Job{
		HospitalID:         hospital.ID,
		Title:              input.Title,
		Department:         input.Department,
		JobType:            input.JobType,
		ExperienceRequired: input.ExperienceRequired,
		MinSalary:          input.MinSalary,
		MaxSalary:          input.MaxSalary,
		Description:        input.Description,
		Status:             "open",
	}
	if err := s.jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *service) Get(jobID uint) (*models.Job, error) {
	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *service) List(filter repositories.JobFilter, offset, limit int) ([]models.Job, int64, error) {
	return s.jobs.List(filter, offset, limit)
}

func (s *service) ListTitles(hospitalUserID uint) ([]models.Job, error) {
	hospital, err := s.hospitals.GetByUserID(hospitalUserID)
	if err != nil {
		return nil, ErrHospitalNotFound
	}
	return s.jobs.ListTitles(hospital.ID)
}

// Update edits an existing posting. Only the owning hospital may edit.
func (s *service) Update(hospitalUserID, jobID uint, input PostInput) (*models.Job, error) {
	hospital, err := s.hospitals.GetByUserID(hospitalUserID)
	if err != nil {
		return nil, ErrHospitalNotFound
	}

	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if job.HospitalID != hospital.ID {
		return nil, ErrNotJobOwner
	}

	if input.Title == "" || input.Description == "" {
		return nil, ErrMissingFields
	}
	if input.JobType != "" && !models.IsValidJobType(input.JobType) {
		return nil, ErrInvalidJobType
	}

	job.Title = input.Title
	job.Department = input.Department
	job.JobType = input.JobType
	job.ExperienceRequired = input.ExperienceRequired
	job.MinSalary = input.MinSalary
	job.MaxSalary = input.MaxSalary
	job.Description = input.Description
	if err := s.jobs.Update(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *service) Close(hospitalUserID, jobID uint) error {
	hospital, err := s.hospitals.GetByUserID(hospitalUserID)
	if err != nil {
		return ErrHospitalNotFound
	}

	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		return ErrJobNotFound
	}
	if job.HospitalID != hospital.ID {
		return ErrNotJobOwner
	}

	job.Status = "closed"
	return s.jobs.Update(job)
}
