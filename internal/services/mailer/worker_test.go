package mailer

import (
	"context"
	"errors"
	"testing"

	"docspace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(task *models.EmailTask) error { return m.Called(task).Error(0) }

func (m *MockTaskRepo) GetByID(id string) (*models.EmailTask, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailTask), args.Error(1)
}

func (m *MockTaskRepo) Update(task *models.EmailTask) error { return m.Called(task).Error(0) }

func (m *MockTaskRepo) ListByStatus(status string, limit int) ([]models.EmailTask, error) {
	args := m.Called(status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EmailTask), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(to, subject, html string) error {
	return m.Called(to, subject, html).Error(0)
}

func TestWorker_ProcessSuccess(t *testing.T) {
	tasks := new(MockTaskRepo)
	sender := new(MockSender)

	task := &models.EmailTask{
		ID:      "t1",
		To:      "doc@example.com",
		Subject: "Interview Scheduled",
		HTML:    "<p>hello</p>",
		Status:  models.EmailQueued,
	}
	tasks.On("GetByID", "t1").Return(task, nil)
	sender.On("Send", task.To, task.Subject, task.HTML).Return(nil)
	tasks.On("Update", mock.MatchedBy(func(updated *models.EmailTask) bool {
		return updated.Status == models.EmailSent && updated.Attempts == 1 && updated.LastError == ""
	})).Return(nil)

	w := NewWorker(tasks, nil, sender)
	w.process(context.Background(), "t1")

	tasks.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestWorker_ProcessFailsPermanentlyAtMaxAttempts(t *testing.T) {
	tasks := new(MockTaskRepo)
	sender := new(MockSender)

	task := &models.EmailTask{
		ID:       "t2",
		To:       "doc@example.com",
		Subject:  "Application Update",
		HTML:     "<p>sorry</p>",
		Status:   models.EmailQueued,
		Attempts: MaxAttempts - 1,
	}
	tasks.On("GetByID", "t2").Return(task, nil)
	sender.On("Send", task.To, task.Subject, task.HTML).Return(errors.New("connection refused"))
	tasks.On("Update", mock.MatchedBy(func(updated *models.EmailTask) bool {
		return updated.Status == models.EmailFailed &&
			updated.Attempts == MaxAttempts &&
			updated.LastError == "connection refused"
	})).Return(nil)

	w := NewWorker(tasks, nil, sender)
	w.process(context.Background(), "t2")

	tasks.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestWorker_ProcessSkipsAlreadySent(t *testing.T) {
	tasks := new(MockTaskRepo)
	sender := new(MockSender)

	tasks.On("GetByID", "t3").Return(&models.EmailTask{
		ID:     "t3",
		Status: models.EmailSent,
	}, nil)

	w := NewWorker(tasks, nil, sender)
	w.process(context.Background(), "t3")

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "Update", mock.Anything)
}

func TestRenderTemplates(t *testing.T) {
	t.Run("interview", func(t *testing.T) {
		subject, html, err := renderInterview(InterviewEmail{
			UserName:      "John Smith",
			JobTitle:      "Senior Cardiologist",
			HospitalName:  "City Care Hospital",
			InterviewDate: "June 12, 2025",
			PersonName:    "Asha Rao",
			PersonEmail:   "hr@citycare.example",
		})
		assert.NoError(t, err)
		assert.Contains(t, subject, "Senior Cardiologist")
		assert.Contains(t, html, "John Smith")
		assert.Contains(t, html, "June 12, 2025")
		assert.Contains(t, html, "City Care Hospital")
	})

	t.Run("rejection", func(t *testing.T) {
		subject, html, err := renderRejection(RejectionEmail{
			UserName:     "John Smith",
			JobTitle:     "Senior Cardiologist",
			HospitalName: "City Care Hospital",
		})
		assert.NoError(t, err)
		assert.Contains(t, subject, "Senior Cardiologist")
		assert.Contains(t, html, "John Smith")
	})
}
