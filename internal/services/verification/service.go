// Package verification implements the identity verification scoring
// pipeline: fetch the stored documents, fan out to the registry and OCR
// collaborators, and fold the results into a weighted verdict.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"docspace/internal/repositories"
	"docspace/internal/services/storage"

	"golang.org/x/sync/errgroup"
)

// DefaultTaskTimeout bounds each fanned-out collaborator call. A timed-out
// task scores zero, same as any other failure.
const DefaultTaskTimeout = 30 * time.Second

var ErrLicenseRequired = errors.New("license document is required for verification")

type Config struct {
	DocumentBucket string
	TaskTimeout    time.Duration
}

type Service interface {
	// Check runs the full scoring pipeline for a user and returns the
	// read-only verdict. It never mutates the user's persisted status.
	Check(ctx context.Context, userID uint) (*Report, error)
}

type service struct {
	users    repositories.UserRepository
	store    storage.Service
	registry RegistryClient
	ocr      OCRClient
	cfg      Config
	now      func() time.Time
}

func NewService(users repositories.UserRepository, store storage.Service, registry RegistryClient, ocr OCRClient, cfg Config) Service {
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = DefaultTaskTimeout
	}
	return &service{
		users:    users,
		store:    store,
		registry: registry,
		ocr:      ocr,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *service) Check(ctx context.Context, userID uint) (*Report, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// The license is mandatory: without it no task is dispatched.
	licensePDF, err := fetchDocument(ctx, s.store, user.LicenseDocURL, s.cfg.DocumentBucket)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLicenseRequired, err)
	}

	// A missing ID degrades gracefully, its sub-score is simply skipped.
	idPDF, err := fetchDocument(ctx, s.store, user.IDDocURL, s.cfg.DocumentBucket)
	if err != nil {
		log.Printf("[Verification] ID document unavailable for user %d: %v", userID, err)
		idPDF = nil
	}

	var (
		registryResult   *RegistryResult
		extractedLicense *ExtractedFields
		extractedID      *ExtractedFields
	)

	// Fan out. Every task settles independently: a failed call logs and
	// leaves its slot nil, it never cancels the siblings.
	g := new(errgroup.Group)

	if user.Role == "doctor" {
		g.Go(func() error {
			taskCtx, cancel := context.WithTimeout(ctx, s.cfg.TaskTimeout)
			defer cancel()
			result, err := s.registry.Lookup(taskCtx, user.Name, user.RegistrationNumber)
			if err != nil {
				log.Printf("[Verification] registry lookup failed for user %d: %v", userID, err)
				return nil
			}
			registryResult = result
			return nil
		})
	}

	g.Go(func() error {
		taskCtx, cancel := context.WithTimeout(ctx, s.cfg.TaskTimeout)
		defer cancel()
		fields, err := s.ocr.ExtractLicense(taskCtx, licensePDF)
		if err != nil {
			log.Printf("[Verification] license OCR failed for user %d: %v", userID, err)
			return nil
		}
		extractedLicense = fields
		return nil
	})

	if idPDF != nil {
		g.Go(func() error {
			taskCtx, cancel := context.WithTimeout(ctx, s.cfg.TaskTimeout)
			defer cancel()
			fields, err := s.ocr.ExtractID(taskCtx, idPDF)
			if err != nil {
				log.Printf("[Verification] ID OCR failed for user %d: %v", userID, err)
				return nil
			}
			extractedID = fields
			return nil
		})
	}

	// Tasks never return errors, Wait is purely a join point.
	_ = g.Wait()

	breakdown := Breakdown{}
	if registryResult != nil {
		breakdown.RegistryScore = scoreRegistry(registryIdentity{
			Name:                user.Name,
			RegistrationNumber:  user.RegistrationNumber,
			RegistrationCouncil: user.RegistrationCouncil,
			YearsOfExperience:   user.YearsOfExperience,
		}, *registryResult, s.now())
	}
	if extractedLicense != nil {
		breakdown.LicenseOCRScore = scoreOCRName(extractedLicense.Name, user.Name)
	}
	if extractedID != nil {
		breakdown.IDOCRScore = scoreOCRName(extractedID.Name, user.Name)
	}

	total := breakdown.RegistryScore + breakdown.LicenseOCRScore + breakdown.IDOCRScore

	return &Report{
		Name:               user.Name,
		Role:               user.Role,
		VerificationScore:  total,
		VerificationStatus: StatusForScore(total),
		Breakdown:          breakdown,
		ExtractedLicense:   extractedLicense,
		ExtractedID:        extractedID,
		RegistryResult:     registryResult,
		Method:             "registry+ocr",
	}, nil
}
