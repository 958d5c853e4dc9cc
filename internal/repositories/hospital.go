package repositories

import (
	"time"

	"docspace/internal/models"

	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(hospital *models.Hospital) error
	GetByID(id uint) (*models.Hospital, error)
	GetByUserID(userID uint) (*models.Hospital, error)
	Update(hospital *models.Hospital) error
	SetVerificationStatus(hospitalID uint, status string, submittedAt *time.Time) error
	ListPendingFIFO() ([]models.Hospital, error)

	UpsertDocument(doc *models.HospitalDocument) error
	GetDocuments(hospitalID uint) ([]models.HospitalDocument, error)
	GetDocument(hospitalID uint, documentType string) (*models.HospitalDocument, error)
}

type hospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) HospitalRepository {
	return &hospitalRepository{db: db}
}

func (r *hospitalRepository) Create(hospital *models.Hospital) error {
	return r.db.Create(hospital).Error
}

func (r *hospitalRepository) GetByID(id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.First(&hospital, id).Error
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByUserID(userID uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.Where("user_id = ?", userID).First(&hospital).Error
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) Update(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}

func (r *hospitalRepository) SetVerificationStatus(hospitalID uint, status string, submittedAt *time.Time) error {
	updates := map[string]interface{}{"verification_status": status}
	if submittedAt != nil {
		updates["verification_submitted_at"] = submittedAt
	}
	return r.db.Model(&models.Hospital{}).Where("id = ?", hospitalID).Updates(updates).Error
}

// ListPendingFIFO returns pending hospitals oldest submission first.
func (r *hospitalRepository) ListPendingFIFO() ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.
		Where("verification_status = ?", models.VerificationPending).
		Order("verification_submitted_at ASC").
		Find(&hospitals).Error
	return hospitals, err
}

func (r *hospitalRepository) UpsertDocument(doc *models.HospitalDocument) error {
	var existing models.HospitalDocument
	err := r.db.
		Where("hospital_id = ? AND document_type = ?", doc.HospitalID, doc.DocumentType).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(doc).Error
	}
	if err != nil {
		return err
	}

	existing.FilePath = doc.FilePath
	existing.UploadedAt = doc.UploadedAt
	return r.db.Save(&existing).Error
}

func (r *hospitalRepository) GetDocuments(hospitalID uint) ([]models.HospitalDocument, error) {
	var docs []models.HospitalDocument
	err := r.db.Where("hospital_id = ?", hospitalID).Find(&docs).Error
	return docs, err
}

func (r *hospitalRepository) GetDocument(hospitalID uint, documentType string) (*models.HospitalDocument, error) {
	var doc models.HospitalDocument
	err := r.db.
		Where("hospital_id = ? AND document_type = ?", hospitalID, documentType).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
