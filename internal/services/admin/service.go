// Package admin implements the review actions behind the admin panel:
// approving and rejecting doctor and hospital verifications.
package admin

import (
	"errors"
	"fmt"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/services/notification"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrNotPending       = errors.New("verification is not pending")
	ErrInvalidAction    = errors.New("action must be approve or reject")
)

type Service struct {
	users         repositories.UserRepository
	hospitals     repositories.HospitalRepository
	notifications *notification.Service
}

func NewService(
	users repositories.UserRepository,
	hospitals repositories.HospitalRepository,
	notifications *notification.Service,
) *Service {
	return &Service{users: users, hospitals: hospitals, notifications: notifications}
}

// PendingDoctors lists doctors awaiting review.
func (s *Service) PendingDoctors() ([]*models.User, error) {
	return s.users.ListByVerificationStatus(models.VerificationPending)
}

// ReviewDoctor applies an explicit approve or reject decision. The decision
// is the admin's; the AI check only informs it.
func (s *Service) ReviewDoctor(userID uint, action string) error {
	status, verified, err := statusForAction(action)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.VerificationStatus != models.VerificationPending {
		return ErrNotPending
	}

	if err := s.users.UpdateFields(userID, map[string]interface{}{
		"verification_status": status,
		"verified":            verified,
	}); err != nil {
		return err
	}

	s.notifications.Notify(userID, "verification",
		verdictTitle(status),
		fmt.Sprintf("Your identity verification has been %s.", status),
		"/profile/verification",
	)
	return nil
}

// PendingHospitals lists hospitals awaiting review, oldest submission first.
func (s *Service) PendingHospitals() ([]models.Hospital, error) {
	return s.hospitals.ListPendingFIFO()
}

func (s *Service) HospitalProfile(hospitalID uint) (*models.Hospital, error) {
	hospital, err := s.hospitals.GetByID(hospitalID)
	if err != nil {
		return nil, ErrHospitalNotFound
	}
	return hospital, nil
}

func (s *Service) ReviewHospital(hospitalID uint, action string) error {
	status, _, err := statusForAction(action)
	if err != nil {
		return err
	}

	hospital, err := s.hospitals.GetByID(hospitalID)
	if err != nil {
		return ErrHospitalNotFound
	}
	if hospital.VerificationStatus != models.VerificationPending {
		return ErrNotPending
	}

	if err := s.hospitals.SetVerificationStatus(hospitalID, status, nil); err != nil {
		return err
	}

	s.notifications.Notify(hospital.UserID, "verification",
		verdictTitle(status),
		fmt.Sprintf("Your hospital verification has been %s.", status),
		"/hospital/verification",
	)
	return nil
}

func statusForAction(action string) (status string, verified bool, err error) {
	switch action {
	case "approve":
		return models.VerificationApproved, true, nil
	case "reject":
		return models.VerificationRejected, false, nil
	default:
		return "", false, ErrInvalidAction
	}
}

func verdictTitle(status string) string {
	if status == models.VerificationApproved {
		return "Verification Approved"
	}
	return "Verification Rejected"
}
