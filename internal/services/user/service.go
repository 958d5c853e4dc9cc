package user

import (
	"errors"

	"docspace/internal/models"
	"docspace/internal/repositories"

	"github.com/lib/pq"
)

var ErrProfileNotFound = errors.New("profile not found")

// ResumeUpdate carries the fields a user may change on their medical resume.
// Pointers distinguish "not provided" from "set to empty".
type ResumeUpdate struct {
	Role                *string  `json:"role"`
	Name                *string  `json:"name"`
	Phone               *string  `json:"phone"`
	Designation         *string  `json:"designation"`
	Specialization      *string  `json:"specialization"`
	RegistrationNumber  *string  `json:"registration_number"`
	RegistrationCouncil *string  `json:"registration_council"`
	YearsOfExperience   *string  `json:"years_of_experience"`
	HospitalAffiliation *string  `json:"hospital_affiliation"`
	Qualifications      []string `json:"qualifications"`
	Skills              []string `json:"skills"`
	Bio                 *string  `json:"bio"`
}

type Service interface {
	GetResume(userID uint) (*models.User, error)
	UpdateResume(userID uint, update ResumeUpdate) error
	Search(query string, limit int) ([]*models.User, error)
	GetPublicProfile(userID uint) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) GetResume(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateResume applies a whitelisted partial update and marks the profile
// completed. The admin role can never be self-assigned, and the role is
// locked once the profile has been completed.
func (s *service) UpdateResume(userID uint, update ResumeUpdate) error {
	current, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"profile_completed": true}

	if update.Role != nil && *update.Role != "admin" && !current.ProfileCompleted {
		fields["role"] = *update.Role
	}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Designation != nil {
		fields["designation"] = *update.Designation
	}
	if update.Specialization != nil {
		fields["specialization"] = *update.Specialization
	}
	if update.RegistrationNumber != nil {
		fields["registration_number"] = *update.RegistrationNumber
	}
	if update.RegistrationCouncil != nil {
		fields["registration_council"] = *update.RegistrationCouncil
	}
	if update.YearsOfExperience != nil {
		fields["years_of_experience"] = *update.YearsOfExperience
	}
	if update.HospitalAffiliation != nil {
		fields["hospital_affiliation"] = *update.HospitalAffiliation
	}
	if update.Qualifications != nil {
		fields["qualifications"] = pq.StringArray(update.Qualifications)
	}
	if update.Skills != nil {
		fields["skills"] = pq.StringArray(update.Skills)
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}

	return s.userRepo.UpdateFields(userID, fields)
}

func (s *service) Search(query string, limit int) ([]*models.User, error) {
	if len(query) < 2 {
		return []*models.User{}, nil
	}
	return s.userRepo.SearchCompletedProfiles(query, limit)
}

func (s *service) GetPublicProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	if !user.ProfileCompleted {
		return nil, ErrProfileNotFound
	}
	return user, nil
}
