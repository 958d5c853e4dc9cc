package repositories

import (
	"docspace/internal/models"

	"gorm.io/gorm"
)

// JobFilter narrows job listing queries. Zero values mean "no filter".
type JobFilter struct {
	Query      string
	Department string
	JobType    string
	HospitalID uint
	Status     string
}

type JobRepository interface {
	Create(job *models.Job) error
	GetByID(id uint) (*models.Job, error)
	Update(job *models.Job) error
	List(filter JobFilter, offset, limit int) ([]models.Job, int64, error)
	ListTitles(hospitalID uint) ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) GetByID(id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Hospital").First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *jobRepository) List(filter JobFilter, offset, limit int) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if filter.Query != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+filter.Query+"%", "%"+filter.Query+"%")
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.JobType != "" {
		query = query.Where("job_type = ?", filter.JobType)
	}
	if filter.HospitalID != 0 {
		query = query.Where("hospital_id = ?", filter.HospitalID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.
		Preload("Hospital").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *jobRepository) ListTitles(hospitalID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Select("id", "title", "department", "status").
		Where("hospital_id = ?", hospitalID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}
