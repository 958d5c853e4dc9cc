package application

import (
	"context"
	"testing"
	"time"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/services/mailer"
	"docspace/internal/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAppRepo struct {
	mock.Mock
}

func (m *MockAppRepo) Create(app *models.JobApplication) error { return m.Called(app).Error(0) }

func (m *MockAppRepo) GetByID(id uint) (*models.JobApplication, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockAppRepo) ListByJob(jobID uint) ([]models.JobApplication, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobApplication), args.Error(1)
}

func (m *MockAppRepo) ListByUser(userID uint) ([]models.JobApplication, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobApplication), args.Error(1)
}

func (m *MockAppRepo) SetStatus(id uint, status string, interviewDate *time.Time) error {
	return m.Called(id, status, interviewDate).Error(0)
}

func (m *MockAppRepo) CountByJobIDsSince(jobIDs []uint, since time.Time) (int64, error) {
	args := m.Called(jobIDs, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppRepo) CountByUserAndStatus(userID uint, statuses ...string) (int64, error) {
	args := m.Called(userID, statuses)
	return args.Get(0).(int64), args.Error(1)
}

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

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(n *models.Notification) error { return m.Called(n).Error(0) }

func (m *MockNotificationRepo) ListByUser(userID uint, limit int) ([]models.Notification, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) CountUnread(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(userID uint, notificationID uint) error {
	return m.Called(userID, notificationID).Error(0)
}

func (m *MockNotificationRepo) MarkAllRead(userID uint) error {
	return m.Called(userID).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) EnqueueInterview(ctx context.Context, to string, data mailer.InterviewEmail) error {
	return m.Called(ctx, to, data).Error(0)
}

func (m *MockMailer) EnqueueRejection(ctx context.Context, to string, data mailer.RejectionEmail) error {
	return m.Called(ctx, to, data).Error(0)
}

func hospitalFixture() *models.Hospital {
	h := &models.Hospital{
		UserID:       7,
		HospitalName: "City Care Hospital",
		PersonName:   "Asha Rao",
		PersonEmail:  "hr@citycare.example",
	}
	h.ID = 3
	return h
}

func applicationFixture() *models.JobApplication {
	jobRow := &models.Job{HospitalID: 3, Title: "Senior Cardiologist"}
	jobRow.ID = 11
	applicant := &models.User{Name: "John Smith", Email: "john@example.com"}
	applicant.ID = 20

	app := &models.JobApplication{
		JobID:  11,
		Job:    jobRow,
		UserID: 20,
		User:   applicant,
		Status: "pending",
	}
	app.ID = 5
	return app
}

func TestApply(t *testing.T) {
	t.Run("applies to an open job", func(t *testing.T) {
		apps := new(MockAppRepo)
		jobs := new(MockJobRepo)

		opening := &models.Job{Title: "Nurse", Status: "open"}
		opening.ID = 11
		jobs.On("GetByID", uint(11)).Return(opening, nil)
		apps.On("Create", mock.MatchedBy(func(a *models.JobApplication) bool {
			return a.JobID == 11 && a.UserID == 20 && a.Status == "pending"
		})).Return(nil)

		s := NewService(apps, jobs, new(MockHospitalRepo), nil, nil)
		app, err := s.Apply(20, 11)
		assert.NoError(t, err)
		assert.Equal(t, "pending", app.Status)
	})

	t.Run("closed job refused", func(t *testing.T) {
		apps := new(MockAppRepo)
		jobs := new(MockJobRepo)

		closed := &models.Job{Title: "Nurse", Status: "closed"}
		closed.ID = 11
		jobs.On("GetByID", uint(11)).Return(closed, nil)

		s := NewService(apps, jobs, new(MockHospitalRepo), nil, nil)
		_, err := s.Apply(20, 11)
		assert.ErrorIs(t, err, ErrJobClosed)
		apps.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("duplicate application", func(t *testing.T) {
		apps := new(MockAppRepo)
		jobs := new(MockJobRepo)

		opening := &models.Job{Title: "Nurse", Status: "open"}
		opening.ID = 11
		jobs.On("GetByID", uint(11)).Return(opening, nil)
		apps.On("Create", mock.Anything).Return(repositories.ErrAlreadyApplied)

		s := NewService(apps, jobs, new(MockHospitalRepo), nil, nil)
		_, err := s.Apply(20, 11)
		assert.ErrorIs(t, err, ErrAlreadyApplied)
	})
}

func TestApprove(t *testing.T) {
	apps := new(MockAppRepo)
	jobs := new(MockJobRepo)
	hospitals := new(MockHospitalRepo)
	notifRepo := new(MockNotificationRepo)
	mail := new(MockMailer)

	hospitals.On("GetByUserID", uint(7)).Return(hospitalFixture(), nil)
	apps.On("GetByID", uint(5)).Return(applicationFixture(), nil)

	interviewDate := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	apps.On("SetStatus", uint(5), "approved", &interviewDate).Return(nil)

	notifRepo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 20 && n.Title == "Application Approved"
	})).Return(nil)
	mail.On("EnqueueInterview", mock.Anything, "john@example.com", mock.MatchedBy(func(data mailer.InterviewEmail) bool {
		return data.JobTitle == "Senior Cardiologist" && data.InterviewDate == "June 12, 2025"
	})).Return(nil)

	s := NewService(apps, jobs, hospitals, notification.NewService(notifRepo), mail)
	err := s.Approve(context.Background(), 7, 5, interviewDate)
	assert.NoError(t, err)

	apps.AssertExpectations(t)
	notifRepo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestReject(t *testing.T) {
	apps := new(MockAppRepo)
	jobs := new(MockJobRepo)
	hospitals := new(MockHospitalRepo)
	notifRepo := new(MockNotificationRepo)
	mail := new(MockMailer)

	hospitals.On("GetByUserID", uint(7)).Return(hospitalFixture(), nil)
	apps.On("GetByID", uint(5)).Return(applicationFixture(), nil)
	apps.On("SetStatus", uint(5), "rejected", (*time.Time)(nil)).Return(nil)

	notifRepo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 20 && n.Title == "Application Rejected"
	})).Return(nil)
	mail.On("EnqueueRejection", mock.Anything, "john@example.com", mock.Anything).Return(nil)

	s := NewService(apps, jobs, hospitals, notification.NewService(notifRepo), mail)
	assert.NoError(t, s.Reject(context.Background(), 7, 5))
	mail.AssertExpectations(t)
}

func TestApprove_OtherHospitalsApplication(t *testing.T) {
	apps := new(MockAppRepo)
	jobs := new(MockJobRepo)
	hospitals := new(MockHospitalRepo)
	mail := new(MockMailer)

	other := hospitalFixture()
	other.ID = 99
	hospitals.On("GetByUserID", uint(7)).Return(other, nil)
	apps.On("GetByID", uint(5)).Return(applicationFixture(), nil)

	s := NewService(apps, jobs, hospitals, nil, mail)
	err := s.Approve(context.Background(), 7, 5, time.Now())
	assert.ErrorIs(t, err, ErrNotJobOwner)

	apps.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	mail.AssertNotCalled(t, "EnqueueInterview", mock.Anything, mock.Anything, mock.Anything)
}
