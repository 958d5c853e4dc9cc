// Package chat persists direct messages and relays them over Redis pub/sub
// so that any server instance holding the receiver's websocket can deliver
// in real time.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/repositories/cache"
)

var (
	ErrEmptyMessage = errors.New("message content is empty")
	ErrSelfMessage  = errors.New("cannot send a message to yourself")
)

// channelFor is the pub/sub channel a user's connections subscribe to.
func channelFor(userID uint) string {
	return fmt.Sprintf("chat:%d", userID)
}

// Event is the payload relayed over pub/sub when a message is stored.
type Event struct {
	MessageID  uint   `json:"message_id"`
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	FileURL    string `json:"file_url,omitempty"`
	FileName   string `json:"file_name,omitempty"`
	SentAt     string `json:"sent_at"`
}

// SendInput carries one outgoing message. FileURL and FileName are set only
// for type "file".
type SendInput struct {
	ReceiverID uint
	Type       string
	Content    string
	FileURL    string
	FileName   string
}

type Service struct {
	messages repositories.MessageRepository
	cache    *cache.CacheService
}

func NewService(messages repositories.MessageRepository, cacheService *cache.CacheService) *Service {
	return &Service{messages: messages, cache: cacheService}
}

// Send stores the message and publishes it to the receiver's channel. The
// stored row is the source of truth; a failed publish only costs real-time
// delivery, the receiver still sees the message on next history load.
func (s *Service) Send(ctx context.Context, senderID uint, input SendInput) (*models.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && input.FileURL == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == input.ReceiverID {
		return nil, ErrSelfMessage
	}

	msgType := input.Type
	if msgType == "" {
		msgType = "text"
	}
	if input.FileURL != "" {
		msgType = "file"
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Type:       msgType,
		Content:    content,
		FileURL:    input.FileURL,
		FileName:   input.FileName,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}

	event := Event{
		MessageID:  msg.ID,
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Type:       msgType,
		Content:    content,
		FileURL:    input.FileURL,
		FileName:   input.FileName,
		SentAt:     msg.CreatedAt.Format(time.RFC3339),
	}
	if err := s.cache.Publish(ctx, channelFor(input.ReceiverID), event); err != nil {
		log.Printf("[Chat] publish to %s failed: %v", channelFor(input.ReceiverID), err)
	}
	return msg, nil
}

// History returns the full conversation between the two users, oldest first,
// annotated with the direction relative to userID.
func (s *Service) History(userID, otherID uint) ([]models.MessageView, error) {
	msgs, err := s.messages.ListConversation(userID, otherID)
	if err != nil {
		return nil, err
	}
	views := make([]models.MessageView, 0, len(msgs))
	for _, m := range msgs {
		from := "them"
		if m.SenderID == userID {
			from = "me"
		}
		views = append(views, models.MessageView{
			From:      from,
			Type:      m.Type,
			Text:      m.Content,
			FileURL:   m.FileURL,
			FileName:  m.FileName,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return views, nil
}

// Subscribe opens a pub/sub subscription for the user's channel and streams
// decoded events until ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context, userID uint) (<-chan Event, func()) {
	sub := s.cache.Subscribe(ctx, channelFor(userID))
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("[Chat] bad payload on %s: %v", channelFor(userID), err)
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cancel := func() {
		if err := sub.Close(); err != nil {
			log.Printf("[Chat] closing subscription for user %d: %v", userID, err)
		}
	}
	return events, cancel
}
