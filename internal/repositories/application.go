package repositories

import (
	"errors"
	"time"

	"docspace/internal/models"

	"gorm.io/gorm"
)

var ErrAlreadyApplied = errors.New("already applied to this job")

type ApplicationRepository interface {
	Create(app *models.JobApplication) error
	GetByID(id uint) (*models.JobApplication, error)
	ListByJob(jobID uint) ([]models.JobApplication, error)
	ListByUser(userID uint) ([]models.JobApplication, error)
	SetStatus(id uint, status string, interviewDate *time.Time) error
	CountByJobIDsSince(jobIDs []uint, since time.Time) (int64, error)
	CountByUserAndStatus(userID uint, statuses ...string) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.JobApplication) error {
	var count int64
	r.db.Model(&models.JobApplication{}).
		Where("job_id = ? AND user_id = ?", app.JobID, app.UserID).
		Count(&count)
	if count > 0 {
		return ErrAlreadyApplied
	}
	return r.db.Create(app).Error
}

func (r *applicationRepository) GetByID(id uint) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.Preload("Job").Preload("User").First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByJob(jobID uint) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.
		Preload("User").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByUser(userID uint) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.
		Preload("Job").
		Preload("Job.Hospital").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) SetStatus(id uint, status string, interviewDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if interviewDate != nil {
		updates["interview_date"] = interviewDate
	}
	result := r.db.Model(&models.JobApplication{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepository) CountByJobIDsSince(jobIDs []uint, since time.Time) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("job_id IN ? AND created_at >= ?", jobIDs, since).
		Count(&count).Error
	return count, err
}

func (r *applicationRepository) CountByUserAndStatus(userID uint, statuses ...string) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Count(&count).Error
	return count, err
}
