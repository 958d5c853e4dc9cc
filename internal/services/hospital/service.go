// Package hospital manages hospital profiles and the document based
// verification flow.
package hospital

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/services/document"
	"docspace/internal/services/insight"
	"docspace/internal/services/storage"
	"docspace/internal/services/verification"

	"gorm.io/gorm"
)

const documentBucket = "hospital-verification"

var (
	ErrProfileNotFound     = errors.New("hospital profile not found")
	ErrProfileExists       = errors.New("hospital profile already exists")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrMissingDocuments    = errors.New("required documents missing")
	ErrAlreadySubmitted    = errors.New("verification already submitted")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrMissingFields       = errors.New("required profile fields missing")
	ErrInsightsUnavailable = errors.New("insight model is not configured")
)

// ProfileInput carries the hospital profile form.
type ProfileInput struct {
	HospitalName               string `json:"hospital_name"`
	HospitalType               string `json:"hospital_type"`
	RegistrationNumberHospital string `json:"registration_number"`
	City                       string `json:"city"`
	State                      string `json:"state"`
	PersonName                 string `json:"person_name"`
	PersonEmail                string `json:"person_email"`
	Website                    string `json:"website"`
}

// VerificationState is the hospital-facing view of where verification stands.
type VerificationState struct {
	Status            string   `json:"status"`
	UploadedDocuments []string `json:"uploaded_documents"`
	MissingDocuments  []string `json:"missing_documents"`
}

type Service struct {
	hospitals repositories.HospitalRepository
	storage   storage.Service
	ocr       verification.OCRClient
	insights  insight.Service
}

func NewService(
	hospitals repositories.HospitalRepository,
	storageClient storage.Service,
	ocr verification.OCRClient,
	insights insight.Service,
) *Service {
	return &Service{
		hospitals: hospitals,
		storage:   storageClient,
		ocr:       ocr,
		insights:  insights,
	}
}

// SaveProfile creates or updates the hospital row for the user.
func (s *Service) SaveProfile(userID uint, input ProfileInput) (*models.Hospital, error) {
	if input.HospitalName == "" || input.City == "" || input.PersonName == "" || input.PersonEmail == "" {
		return nil, ErrMissingFields
	}

	hospital, err := s.hospitals.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hospital = &models.Hospital{
			UserID:             userID,
			VerificationStatus: models.VerificationNotSubmitted,
		}
		s.applyProfile(hospital, input)
		if err := s.hospitals.Create(hospital); err != nil {
			return nil, err
		}
		return hospital, nil
	}
	if err != nil {
		return nil, err
	}

	s.applyProfile(hospital, input)
	if err := s.hospitals.Update(hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

func (s *Service) applyProfile(hospital *models.Hospital, input ProfileInput) {
	hospital.HospitalName = input.HospitalName
	hospital.HospitalType = input.HospitalType
	hospital.RegistrationNumberHospital = input.RegistrationNumberHospital
	hospital.City = input.City
	hospital.State = input.State
	hospital.PersonName = input.PersonName
	hospital.PersonEmail = input.PersonEmail
	hospital.Website = input.Website
}

func (s *Service) GetProfile(userID uint) (*models.Hospital, error) {
	hospital, err := s.hospitals.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	return hospital, err
}

// UploadDocument validates the PDF and stores it, overwriting any previous
// upload of the same type.
func (s *Service) UploadDocument(ctx context.Context, userID uint, documentType string, data []byte) error {
	if !models.IsValidHospitalDocumentType(documentType) {
		return ErrInvalidDocumentType
	}
	hospital, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if _, err := document.ValidatePDF(data); err != nil {
		return err
	}

	path := fmt.Sprintf("%d/%s.pdf", hospital.ID, documentType)
	if err := s.storage.Upload(ctx, documentBucket, path, data, "application/pdf"); err != nil {
		return fmt.Errorf("uploading document: %w", err)
	}

	return s.hospitals.UpsertDocument(&models.HospitalDocument{
		HospitalID:   hospital.ID,
		DocumentType: documentType,
		FilePath:     fmt.Sprintf("%s/%s", documentBucket, path),
		UploadedAt:   time.Now(),
	})
}

// SendForVerification moves the hospital into the review queue once all
// required documents are present.
func (s *Service) SendForVerification(userID uint) error {
	hospital, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if hospital.VerificationStatus == models.VerificationPending ||
		hospital.VerificationStatus == models.VerificationApproved {
		return ErrAlreadySubmitted
	}

	state, err := s.documentState(hospital.ID)
	if err != nil {
		return err
	}
	if len(state.MissingDocuments) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingDocuments, state.MissingDocuments)
	}

	now := time.Now()
	return s.hospitals.SetVerificationStatus(hospital.ID, models.VerificationPending, &now)
}

// Status reports the verification state and uploaded/missing documents.
func (s *Service) Status(userID uint) (*VerificationState, error) {
	hospital, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	state, err := s.documentState(hospital.ID)
	if err != nil {
		return nil, err
	}
	state.Status = hospital.VerificationStatus
	return state, nil
}

func (s *Service) documentState(hospitalID uint) (*VerificationState, error) {
	docs, err := s.hospitals.GetDocuments(hospitalID)
	if err != nil {
		return nil, err
	}
	uploaded := make(map[string]bool, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		uploaded[doc.DocumentType] = true
		names = append(names, doc.DocumentType)
	}
	var missing []string
	for _, required := range models.RequiredHospitalDocuments {
		if !uploaded[required] {
			missing = append(missing, required)
		}
	}
	return &VerificationState{UploadedDocuments: names, MissingDocuments: missing}, nil
}

// DocumentInsights downloads the stored document, extracts its text and asks
// the model for structured observations. Used by admin review.
func (s *Service) DocumentInsights(ctx context.Context, hospitalID uint, documentType string) (*insight.Insights, error) {
	if s.insights == nil {
		return nil, ErrInsightsUnavailable
	}
	if !models.IsValidHospitalDocumentType(documentType) {
		return nil, ErrInvalidDocumentType
	}
	hospital, err := s.hospitals.GetByID(hospitalID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	doc, err := s.hospitals.GetDocument(hospitalID, documentType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	bucket, path := storage.SplitKey(doc.FilePath)
	data, err := s.storage.Download(ctx, bucket, path)
	if err != nil {
		return nil, fmt.Errorf("fetching document: %w", err)
	}

	text, err := s.ocr.ExtractText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}
	log.Printf("[Hospital] extracted %d chars from %s document of hospital %d", len(text), documentType, hospitalID)

	return s.insights.Generate(ctx, documentType, text, insight.HospitalProfile{
		HospitalName:               hospital.HospitalName,
		HospitalType:               hospital.HospitalType,
		RegistrationNumberHospital: hospital.RegistrationNumberHospital,
		City:                       hospital.City,
		State:                      hospital.State,
		Website:                    hospital.Website,
	})
}

// SignedDocumentURLs returns short-lived download links for every uploaded
// document. Used by admin review.
func (s *Service) SignedDocumentURLs(ctx context.Context, hospitalID uint) (map[string]string, error) {
	docs, err := s.hospitals.GetDocuments(hospitalID)
	if err != nil {
		return nil, err
	}
	urls := make(map[string]string, len(docs))
	for _, doc := range docs {
		bucket, path := storage.SplitKey(doc.FilePath)
		url, err := s.storage.SignedURL(ctx, bucket, path, 15*time.Minute)
		if err != nil {
			log.Printf("[Hospital] signing %s for hospital %d: %v", doc.DocumentType, hospitalID, err)
			continue
		}
		urls[doc.DocumentType] = url
	}
	return urls, nil
}
