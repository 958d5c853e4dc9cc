package repositories

import (
	"docspace/internal/models"

	"gorm.io/gorm"
)

type EmailTaskRepository interface {
	Create(task *models.EmailTask) error
	GetByID(id string) (*models.EmailTask, error)
	Update(task *models.EmailTask) error
	ListByStatus(status string, limit int) ([]models.EmailTask, error)
}

type emailTaskRepository struct {
	db *gorm.DB
}

func NewEmailTaskRepository(db *gorm.DB) EmailTaskRepository {
	return &emailTaskRepository{db: db}
}

func (r *emailTaskRepository) Create(task *models.EmailTask) error {
	return r.db.Create(task).Error
}

func (r *emailTaskRepository) GetByID(id string) (*models.EmailTask, error) {
	var task models.EmailTask
	err := r.db.Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *emailTaskRepository) Update(task *models.EmailTask) error {
	return r.db.Save(task).Error
}

func (r *emailTaskRepository) ListByStatus(status string, limit int) ([]models.EmailTask, error) {
	var tasks []models.EmailTask
	err := r.db.
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}
