// Package mailer queues and delivers outbound email. Sends are never
// fire-and-forget: every mail is persisted as an EmailTask and its ID pushed
// onto a Redis list that the worker drains with bounded retries.
package mailer

import (
	"context"
	"log"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/repositories/cache"

	"github.com/google/uuid"
)

// QueueKey is the Redis list holding pending email task IDs.
const QueueKey = "email:queue"

type Service interface {
	EnqueueInterview(ctx context.Context, to string, data InterviewEmail) error
	EnqueueRejection(ctx context.Context, to string, data RejectionEmail) error
}

type service struct {
	tasks repositories.EmailTaskRepository
	cache *cache.CacheService
}

func NewService(tasks repositories.EmailTaskRepository, cacheService *cache.CacheService) Service {
	return &service{tasks: tasks, cache: cacheService}
}

func (s *service) EnqueueInterview(ctx context.Context, to string, data InterviewEmail) error {
	subject, html, err := renderInterview(data)
	if err != nil {
		return err
	}
	return s.enqueue(ctx, to, subject, html)
}

func (s *service) EnqueueRejection(ctx context.Context, to string, data RejectionEmail) error {
	subject, html, err := renderRejection(data)
	if err != nil {
		return err
	}
	return s.enqueue(ctx, to, subject, html)
}

func (s *service) enqueue(ctx context.Context, to, subject, html string) error {
	task := &models.EmailTask{
		ID:      uuid.NewString(),
		To:      to,
		Subject: subject,
		HTML:    html,
		Status:  models.EmailQueued,
	}
	if err := s.tasks.Create(task); err != nil {
		return err
	}

	// The row is the source of truth; if the push fails the requeue sweep
	// picks the task up later.
	if err := s.cache.QueuePush(ctx, QueueKey, task.ID); err != nil {
		log.Printf("[Mailer] failed to push task %s to queue: %v", task.ID, err)
	}
	return nil
}
