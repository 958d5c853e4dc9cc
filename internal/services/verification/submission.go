package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/services/document"
	"docspace/internal/services/storage"
)

var ErrAlreadyVerified = errors.New("verification already approved")

// DocKind selects which document an upload replaces.
type DocKind string

const (
	DocLicense DocKind = "license"
	DocID      DocKind = "id"
)

// SubmissionService handles the doctor side of verification: document
// uploads and the submit action that queues the profile for review.
type SubmissionService struct {
	users  repositories.UserRepository
	store  storage.Service
	bucket string
}

func NewSubmissionService(users repositories.UserRepository, store storage.Service, bucket string) *SubmissionService {
	return &SubmissionService{users: users, store: store, bucket: bucket}
}

// UploadDocument validates and stores a PDF, recording its key on the user.
// Re-uploads overwrite the previous file.
func (s *SubmissionService) UploadDocument(ctx context.Context, userID uint, kind DocKind, data []byte) error {
	if kind != DocLicense && kind != DocID {
		return fmt.Errorf("unknown document kind %q", kind)
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user.VerificationStatus == models.VerificationApproved {
		return ErrAlreadyVerified
	}
	if _, err := document.ValidatePDF(data); err != nil {
		return err
	}

	path := fmt.Sprintf("%d/%s.pdf", userID, kind)
	if err := s.store.Upload(ctx, s.bucket, path, data, "application/pdf"); err != nil {
		return fmt.Errorf("uploading document: %w", err)
	}

	field := "license_doc_url"
	if kind == DocID {
		field = "id_doc_url"
	}
	return s.users.UpdateFields(userID, map[string]interface{}{field: path})
}

// Submit queues the user for admin review. The license document is
// mandatory, the identity document optional.
func (s *SubmissionService) Submit(ctx context.Context, userID uint) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user.VerificationStatus == models.VerificationApproved {
		return ErrAlreadyVerified
	}
	if user.LicenseDocURL == "" {
		return ErrLicenseRequired
	}
	return s.users.UpdateFields(userID, map[string]interface{}{
		"verification_status": models.VerificationPending,
	})
}

// SubmissionState is the doctor-facing view of verification progress.
type SubmissionState struct {
	Status          string `json:"status"`
	LicenseUploaded bool   `json:"license_uploaded"`
	IDUploaded      bool   `json:"id_uploaded"`
}

func (s *SubmissionService) Status(userID uint) (*SubmissionState, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return &SubmissionState{
		Status:          user.VerificationStatus,
		LicenseUploaded: user.LicenseDocURL != "",
		IDUploaded:      user.IDDocURL != "",
	}, nil
}

// SignedDocumentURLs returns short-lived links to the user's uploaded
// documents for admin review.
func (s *SubmissionService) SignedDocumentURLs(ctx context.Context, userID uint) (map[string]string, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	urls := make(map[string]string, 2)
	for kind, ref := range map[string]string{
		"license": user.LicenseDocURL,
		"id":      user.IDDocURL,
	} {
		if ref == "" {
			continue
		}
		bucket, path := resolveRef(ref, s.bucket)
		url, err := s.store.SignedURL(ctx, bucket, path, 15*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("signing %s document: %w", kind, err)
		}
		urls[kind] = url
	}
	return urls, nil
}
