package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/metrics"
)

type ChatService struct {
	messages MessageRepo
	pub      Publisher

	maxLen     int
	defaultLim int
}

func NewChatService(messages MessageRepo, pub Publisher, maxLen, defaultLimit int) *ChatService {
	if maxLen <= 0 {
		maxLen = 4000
	}
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &ChatService{messages: messages, pub: publisherOrNop(pub), maxLen: maxLen, defaultLim: defaultLimit}
}

func (s *ChatService) normalize(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > s.maxLen {
		return "", domain.ErrMessageTooLong
	}
	return content, nil
}

// Send сохраняет сообщение и рассылает его подписчикам группы.
func (s *ChatService) Send(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	content, err := s.normalize(m.Content)
	if err != nil {
		return nil, err
	}
	m.Content = content
	if m.MessageType == "" {
		m.MessageType = domain.MessageTypeText
	}

	saved, err := s.messages.Save(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("messages.Save: %w", err)
	}
	metrics.MessagesPosted.Inc()

	s.pub.Publish(ctx, domain.GroupEvent{Type: domain.EventMessage, GroupID: saved.GroupID, Payload: saved})
	return saved, nil
}

// SendText: короткий путь для websocket-клиентов.
func (s *ChatService) SendText(ctx context.Context, groupID, userID, text string) (string, time.Time, error) {
	m, err := s.Send(ctx, &domain.ChatMessage{GroupID: groupID, UserID: userID, Content: text})
	if err != nil {
		return "", time.Time{}, err
	}
	return m.ID, m.CreatedAt, nil
}

func (s *ChatService) Edit(ctx context.Context, id, content string) (*domain.ChatMessage, error) {
	content, err := s.normalize(content)
	if err != nil {
		return nil, err
	}
	m, err := s.messages.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, domain.GroupEvent{Type: domain.EventMessageUpdated, GroupID: m.GroupID, Payload: m})
	return m, nil
}

// History: от новых к старым; before пустой означает первую страницу.
func (s *ChatService) History(ctx context.Context, groupID, before string, limit int) ([]domain.ChatMessage, string, error) {
	if limit <= 0 {
		limit = s.defaultLim
	}
	return s.messages.History(ctx, groupID, before, limit)
}
