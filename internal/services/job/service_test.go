package job

import (
	"testing"
	"time"

	"docspace/internal/models"
	"docspace/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(job *models.Job) error { return m.Called(job).Error(0) }

func (m *MockJobRepo) GetByID(id uint) (*models.Job, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepo) Update(job *models.Job) error { return m.Called(job).Error(0) }

func (m *MockJobRepo) List(filter repositories.JobFilter, offset, limit int) ([]models.Job, int64, error) {
	args := m.Called(filter, offset, limit)
	return args.Get(0).([]models.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) ListTitles(hospitalID uint) ([]models.Job, error) {
	args := m.Called(hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

type MockHospitalRepo struct {
	mock.Mock
}

func (m *MockHospitalRepo) Create(hospital *models.Hospital) error {
	return m.Called(hospital).Error(0)
}

func (m *MockHospitalRepo) GetByID(id uint) (*models.Hospital, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hospital), args.Error(1)
}

func (m *MockHospitalRepo) GetByUserID(userID uint) (*models.Hospital, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hospital), args.Error(1)
}

func (m *MockHospitalRepo) Update(hospital *models.Hospital) error {
	return m.Called(hospital).Error(0)
}

func (m *MockHospitalRepo) SetVerificationStatus(hospitalID uint, status string, submittedAt *time.Time) error {
	return m.Called(hospitalID, status, submittedAt).Error(0)
}

func (m *MockHospitalRepo) ListPendingFIFO() ([]models.Hospital, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Hospital), args.Error(1)
}

func (m *MockHospitalRepo) UpsertDocument(doc *models.HospitalDocument) error {
	return m.Called(doc).Error(0)
}

func (m *MockHospitalRepo) GetDocuments(hospitalID uint) ([]models.HospitalDocument, error) {
	args := m.Called(hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HospitalDocument), args.Error(1)
}

func (m *MockHospitalRepo) GetDocument(hospitalID uint, documentType string) (*models.HospitalDocument, error) {
	args := m.Called(hospitalID, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HospitalDocument), args.Error(1)
}

func verifiedHospital() *models.Hospital {
	h := &models.Hospital{
		UserID:             7,
		HospitalName:       "City Care Hospital",
		VerificationStatus: models.VerificationApproved,
	}
	h.ID = 3
	return h
}

func TestPost(t *testing.T) {
	tests := []struct {
		name      string
		input     PostInput
		setupMock func(*MockJobRepo, *MockHospitalRepo)
		wantErr   error
	}{
		{
			name:  "verified hospital posts a job",
			input: PostInput{Title: "Senior Cardiologist", Description: "Full-time role", JobType: "full-time"},
			setupMock: func(jobs *MockJobRepo, hospitals *MockHospitalRepo) {
				hospitals.On("GetByUserID", uint(7)).Return(verifiedHospital(), nil)
				jobs.On("Create", mock.MatchedBy(func(j *models.Job) bool {
					return j.HospitalID == 3 && j.Status == "open"
				})).Return(nil)
			},
		},
		{
			name:  "unverified hospital is rejected",
			input: PostInput{Title: "Nurse", Description: "Night shift"},
			setupMock: func(jobs *MockJobRepo, hospitals *MockHospitalRepo) {
				h := verifiedHospital()
				h.VerificationStatus = models.VerificationPending
				hospitals.On("GetByUserID", uint(7)).Return(h, nil)
			},
			wantErr: ErrHospitalNotVerified,
		},
		{
			name:  "missing profile",
			input: PostInput{Title: "Nurse", Description: "Night shift"},
			setupMock: func(jobs *MockJobRepo, hospitals *MockHospitalRepo) {
				hospitals.On("GetByUserID", uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrHospitalNotFound,
		},
		{
			name:  "missing title",
			input: PostInput{Description: "Night shift"},
			setupMock: func(jobs *MockJobRepo, hospitals *MockHospitalRepo) {
				hospitals.On("GetByUserID", uint(7)).Return(verifiedHospital(), nil)
			},
			wantErr: ErrMissingFields,
		},
		{
			name:  "bad job type",
			input: PostInput{Title: "Nurse", Description: "Night shift", JobType: "gig"},
			setupMock: func(jobs *MockJobRepo, hospitals *MockHospitalRepo) {
				hospitals.On("GetByUserID", uint(7)).Return(verifiedHospital(), nil)
			},
			wantErr: ErrInvalidJobType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := new(MockJobRepo)
			hospitals := new(MockHospitalRepo)
			tt.setupMock(jobs, hospitals)

			s := NewService(jobs, hospitals)
			created, err := s.Post(7, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				jobs.AssertNotCalled(t, "Create", mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "open", created.Status)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Run("owner edits a job", func(t *testing.T) {
		jobs := new(MockJobRepo)
		hospitals := new(MockHospitalRepo)

		hospitals.On("GetByUserID", uint(7)).Return(verifiedHospital(), nil)
		opening := &models.Job{HospitalID: 3, Title: "Nurse", Description: "Night shift", Status: "open"}
		opening.ID = 11
		jobs.On("GetByID", uint(11)).Return(opening, nil)
		jobs.On("Update", mock.MatchedBy(func(j *models.Job) bool {
			return j.Title == "Senior Nurse" && j.MinSalary == 60000
		})).Return(nil)

		s := NewService(jobs, hospitals)
		updated, err := s.Update(7, 11, PostInput{
			Title:       "Senior Nurse",
			Description: "Night shift, ICU",
			MinSalary:   60000,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Senior Nurse", updated.Title)
		jobs.AssertExpectations(t)
	})

	t.Run("editing another hospital's job is refused", func(t *testing.T) {
		jobs := new(MockJobRepo)
		hospitals := new(MockHospitalRepo)

		hospitals.On("GetByUserID", uint(7)).Return(verifiedHospital(), nil)
		other := &models.Job{HospitalID: 99, Title: "Nurse", Status: "open"}
		other.ID = 12
		jobs.On("GetByID", uint(12)).Return(other, nil)

		s := NewService(jobs, hospitals)
		_, err := s.Update(7, 12, PostInput{Title: "Nurse", Description: "x"})
		assert.ErrorIs(t, err, ErrNotJobOwner)
		jobs.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestClose(t *testing.T) {
	t.Run("owner closes a job", func(t *testing.T) {
		jobs := new(MockJobRepo)
		hospitals := new(MockHospitalRepo)

		hospitals.On("GetByUserID", uint(7)).Return(verifiedHospital(), nil)
		opening := &models.Job{HospitalID: 3, Title: "Nurse", Status: "open"}
		opening.ID = 11
		jobs.On("GetByID", uint(11)).Return(opening, nil)
		jobs.On("Update", mock.MatchedBy(func(j *models.Job) bool {
			return j.Status == "closed"
		})).Return(nil)

		s := NewService(jobs, hospitals)
		assert.NoError(t, s.Close(7, 11))
		jobs.AssertExpectations(t)
	})

	t.Run("closing another hospital's job is refused", func(t *testing.T) {
		jobs := new(MockJobRepo)
		hospitals := new(MockHospitalRepo)

		hospitals.On("GetByUserID", uint(7)).Return(verifiedHospital(), nil)
		other := &models.Job{HospitalID: 99, Title: "Nurse", Status: "open"}
		other.ID = 12
		jobs.On("GetByID", uint(12)).Return(other, nil)

		s := NewService(jobs, hospitals)
		assert.ErrorIs(t, s.Close(7, 12), ErrNotJobOwner)
		jobs.AssertNotCalled(t, "Update", mock.Anything)
	})
}
