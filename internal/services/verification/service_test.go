package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"docspace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) UpdateFields(userID uint, fields map[string]interface{}) error {
	return m.Called(userID, fields).Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return m.Called(userID, hashedPassword).Error(0)
}

func (m *MockUserRepo) ListByVerificationStatus(status string) ([]*models.User, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepo) SearchCompletedProfiles(query string, limit int) ([]*models.User, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	return m.Called(ctx, bucket, path, data, contentType).Error(0)
}

func (m *MockStorage) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	args := m.Called(ctx, bucket, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, bucket, path, expiresIn)
	return args.String(0), args.Error(1)
}

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Lookup(ctx context.Context, name, registrationNumber string) (*RegistryResult, error) {
	args := m.Called(ctx, name, registrationNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RegistryResult), args.Error(1)
}

type MockOCR struct {
	mock.Mock
}

func (m *MockOCR) ExtractLicense(ctx context.Context, pdf []byte) (*ExtractedFields, error) {
	args := m.Called(ctx, pdf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExtractedFields), args.Error(1)
}

func (m *MockOCR) ExtractID(ctx context.Context, pdf []byte) (*ExtractedFields, error) {
	args := m.Called(ctx, pdf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExtractedFields), args.Error(1)
}

func (m *MockOCR) ExtractText(ctx context.Context, pdf []byte) (string, error) {
	args := m.Called(ctx, pdf)
	return args.String(0), args.Error(1)
}

func newTestService(users *MockUserRepo, store *MockStorage, registry *MockRegistry, ocr *MockOCR) Service {
	svc := NewService(users, store, registry, ocr, Config{DocumentBucket: "doctor-verification"})
	svc.(*service).now = func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return svc
}

func testDoctor() *models.User {
	u := &models.User{
		Name:                "Dr. John Smith",
		Role:                "doctor",
		RegistrationNumber:  "MCI-2014/123",
		RegistrationCouncil: "Maharashtra Medical Council",
		YearsOfExperience:   "10",
		LicenseDocURL:       "1/license.pdf",
		IDDocURL:            "1/id.pdf",
	}
	u.ID = 1
	return u
}

func TestCheck_MissingLicenseSkipsDispatch(t *testing.T) {
	users := new(MockUserRepo)
	store := new(MockStorage)
	registry := new(MockRegistry)
	ocr := new(MockOCR)

	user := testDoctor()
	user.LicenseDocURL = ""
	users.On("GetByID", uint(1)).Return(user, nil)

	svc := newTestService(users, store, registry, ocr)

	report, err := svc.Check(context.Background(), 1)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrLicenseRequired)

	// No collaborator may have been called.
	registry.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
	ocr.AssertNotCalled(t, "ExtractLicense", mock.Anything, mock.Anything)
	ocr.AssertNotCalled(t, "ExtractID", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheck_FullScore(t *testing.T) {
	users := new(MockUserRepo)
	store := new(MockStorage)
	registry := new(MockRegistry)
	ocr := new(MockOCR)

	user := testDoctor()
	users.On("GetByID", uint(1)).Return(user, nil)

	licensePDF := []byte("%PDF-license")
	idPDF := []byte("%PDF-id")
	store.On("Download", mock.Anything, "doctor-verification", "1/license.pdf").Return(licensePDF, nil)
	store.On("Download", mock.Anything, "doctor-verification", "1/id.pdf").Return(idPDF, nil)

	registry.On("Lookup", mock.Anything, user.Name, user.RegistrationNumber).Return(&RegistryResult{
		Name:               "John Smith",
		RegistrationNumber: "2014123",
		Council:            "Maharashtra Medical Council",
		Year:               "2015",
	}, nil)
	ocr.On("ExtractLicense", mock.Anything, licensePDF).Return(&ExtractedFields{Name: "John Smith"}, nil)
	ocr.On("ExtractID", mock.Anything, idPDF).Return(&ExtractedFields{Name: "JOHN SMITH"}, nil)

	svc := newTestService(users, store, registry, ocr)

	report, err := svc.Check(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 80, report.Breakdown.RegistryScore)
	assert.Equal(t, 10, report.Breakdown.LicenseOCRScore)
	assert.Equal(t, 10, report.Breakdown.IDOCRScore)
	assert.Equal(t, 100, report.VerificationScore)
	assert.Equal(t, StatusVerified, report.VerificationStatus)
	assert.Equal(t, "registry+ocr", report.Method)
}

func TestCheck_ScoreIsSumOfBreakdown(t *testing.T) {
	users := new(MockUserRepo)
	store := new(MockStorage)
	registry := new(MockRegistry)
	ocr := new(MockOCR)

	user := testDoctor()
	users.On("GetByID", uint(1)).Return(user, nil)

	store.On("Download", mock.Anything, "doctor-verification", "1/license.pdf").Return([]byte("%PDF-"), nil)
	store.On("Download", mock.Anything, "doctor-verification", "1/id.pdf").Return([]byte("%PDF-"), nil)

	// Registry record belongs to someone else, OCR reads only partial names.
	registry.On("Lookup", mock.Anything, mock.Anything, mock.Anything).Return(&RegistryResult{
		Name:               "Jane Doe",
		RegistrationNumber: "999",
		Council:            "Karnataka Medical Council",
		Year:               "1999",
	}, nil)
	ocr.On("ExtractLicense", mock.Anything, mock.Anything).Return(&ExtractedFields{Name: "John Smith"}, nil)
	ocr.On("ExtractID", mock.Anything, mock.Anything).Return(&ExtractedFields{Name: "J Smith"}, nil)

	svc := newTestService(users, store, registry, ocr)

	report, err := svc.Check(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, report.Breakdown.RegistryScore)
	assert.Equal(t, 10, report.Breakdown.LicenseOCRScore)
	assert.Equal(t, 0, report.Breakdown.IDOCRScore)
	sum := report.Breakdown.RegistryScore + report.Breakdown.LicenseOCRScore + report.Breakdown.IDOCRScore
	assert.Equal(t, sum, report.VerificationScore)
	assert.Equal(t, StatusFailed, report.VerificationStatus)
}

func TestCheck_FailedTasksScoreZero(t *testing.T) {
	users := new(MockUserRepo)
	store := new(MockStorage)
	registry := new(MockRegistry)
	ocr := new(MockOCR)

	user := testDoctor()
	users.On("GetByID", uint(1)).Return(user, nil)

	store.On("Download", mock.Anything, "doctor-verification", "1/license.pdf").Return([]byte("%PDF-"), nil)
	store.On("Download", mock.Anything, "doctor-verification", "1/id.pdf").Return([]byte("%PDF-"), nil)

	registry.On("Lookup", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("registry unavailable"))
	ocr.On("ExtractLicense", mock.Anything, mock.Anything).Return(&ExtractedFields{Name: "John Smith"}, nil)
	ocr.On("ExtractID", mock.Anything, mock.Anything).Return(nil, errors.New("ocr timeout"))

	svc := newTestService(users, store, registry, ocr)

	report, err := svc.Check(context.Background(), 1)
	assert.NoError(t, err, "collaborator failures must not fail the check")
	assert.Equal(t, 0, report.Breakdown.RegistryScore)
	assert.Equal(t, 10, report.Breakdown.LicenseOCRScore)
	assert.Equal(t, 0, report.Breakdown.IDOCRScore)
	assert.Nil(t, report.RegistryResult)
	assert.Nil(t, report.ExtractedID)
}

func TestCheck_MissingIDDegrades(t *testing.T) {
	users := new(MockUserRepo)
	store := new(MockStorage)
	registry := new(MockRegistry)
	ocr := new(MockOCR)

	user := testDoctor()
	user.IDDocURL = ""
	users.On("GetByID", uint(1)).Return(user, nil)

	store.On("Download", mock.Anything, "doctor-verification", "1/license.pdf").Return([]byte("%PDF-"), nil)
	registry.On("Lookup", mock.Anything, mock.Anything, mock.Anything).Return(&RegistryResult{
		Name:               "John Smith",
		RegistrationNumber: "2014123",
		Council:            "Maharashtra Medical Council",
		Year:               "2015",
	}, nil)
	ocr.On("ExtractLicense", mock.Anything, mock.Anything).Return(&ExtractedFields{Name: "John Smith"}, nil)

	svc := newTestService(users, store, registry, ocr)

	report, err := svc.Check(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 90, report.VerificationScore)
	assert.Equal(t, StatusPartiallyVerified, report.VerificationStatus)
	ocr.AssertNotCalled(t, "ExtractID", mock.Anything, mock.Anything)
}

func TestCheck_NonDoctorSkipsRegistry(t *testing.T) {
	users := new(MockUserRepo)
	store := new(MockStorage)
	registry := new(MockRegistry)
	ocr := new(MockOCR)

	user := testDoctor()
	user.Role = "hospital"
	users.On("GetByID", uint(1)).Return(user, nil)

	store.On("Download", mock.Anything, "doctor-verification", "1/license.pdf").Return([]byte("%PDF-"), nil)
	store.On("Download", mock.Anything, "doctor-verification", "1/id.pdf").Return([]byte("%PDF-"), nil)
	ocr.On("ExtractLicense", mock.Anything, mock.Anything).Return(&ExtractedFields{Name: "John Smith"}, nil)
	ocr.On("ExtractID", mock.Anything, mock.Anything).Return(&ExtractedFields{Name: "John Smith"}, nil)

	svc := newTestService(users, store, registry, ocr)

	report, err := svc.Check(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, report.Breakdown.RegistryScore)
	assert.Equal(t, 20, report.VerificationScore)
	registry.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveRef(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		wantBucket string
		wantPath   string
	}{
		{"bare key", "12/license.pdf", "doctor-verification", "12/license.pdf"},
		{
			"public url",
			"https://x.supabase.co/storage/v1/object/public-docs/12/license.pdf?token=abc",
			"public-docs",
			"12/license.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, path := resolveRef(tt.ref, "doctor-verification")
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}
