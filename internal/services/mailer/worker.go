package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/repositories/cache"
)

// MaxAttempts bounds delivery retries per task before it is marked failed.
const MaxAttempts = 3

// SMTPConfig holds the delivery settings for the worker.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Sender delivers one rendered email. Split out so the worker can be tested
// without an SMTP server.
type Sender interface {
	Send(to, subject, html string) error
}

type smtpSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, html string) error {
	msg := []byte("From: " + s.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + html)

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
}

// Worker drains the email queue.
type Worker struct {
	tasks  repositories.EmailTaskRepository
	cache  *cache.CacheService
	sender Sender
}

func NewWorker(tasks repositories.EmailTaskRepository, cacheService *cache.CacheService, sender Sender) *Worker {
	return &Worker{tasks: tasks, cache: cacheService, sender: sender}
}

// Run blocks on the queue until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log.Println("[Mailer] worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("[Mailer] worker stopped")
			return
		default:
		}

		id, err := w.cache.QueuePop(ctx, QueueKey, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[Mailer] queue pop error: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if id == "" {
			continue
		}

		w.process(ctx, id)
	}
}

func (w *Worker) process(ctx context.Context, id string) {
	task, err := w.tasks.GetByID(id)
	if err != nil {
		log.Printf("[Mailer] unknown task %s: %v", id, err)
		return
	}
	if task.Status == models.EmailSent {
		return
	}

	task.Attempts++
	if sendErr := w.sender.Send(task.To, task.Subject, task.HTML); sendErr != nil {
		task.LastError = sendErr.Error()
		if task.Attempts >= MaxAttempts {
			task.Status = models.EmailFailed
			log.Printf("[Mailer] task %s failed permanently after %d attempts: %v", id, task.Attempts, sendErr)
		} else {
			log.Printf("[Mailer] task %s attempt %d failed, requeueing: %v", id, task.Attempts, sendErr)
			if err := w.cache.QueuePush(ctx, QueueKey, task.ID); err != nil {
				log.Printf("[Mailer] requeue of task %s failed: %v", id, err)
			}
		}
	} else {
		task.Status = models.EmailSent
		task.LastError = ""
	}

	if err := w.tasks.Update(task); err != nil {
		log.Printf("[Mailer] failed to update task %s: %v", id, err)
	}
}

// RequeueStuck re-pushes queued tasks whose IDs fell out of the Redis list
// (instance crash between insert and push). Run at startup.
func (w *Worker) RequeueStuck(ctx context.Context) {
	tasks, err := w.tasks.ListByStatus(models.EmailQueued, 100)
	if err != nil {
		log.Printf("[Mailer] requeue sweep failed: %v", err)
		return
	}
	for _, task := range tasks {
		if err := w.cache.QueuePush(ctx, QueueKey, task.ID); err != nil {
			log.Printf("[Mailer] requeue of task %s failed: %v", task.ID, err)
		}
	}
	if len(tasks) > 0 {
		log.Printf("[Mailer] requeued %d pending email tasks", len(tasks))
	}
}
