package service

import (
	"context"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
)

type TypingService struct {
	typing TypingRepo
	pub    Publisher
	ttl    time.Duration
}

func NewTypingService(typing TypingRepo, pub Publisher, ttl time.Duration) *TypingService {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &TypingService{typing: typing, pub: publisherOrNop(pub), ttl: ttl}
}

func (s *TypingService) TTL() time.Duration { return s.ttl }

// Touch обновляет индикатор набора (одна строка на пользователя в группе).
func (s *TypingService) Touch(ctx context.Context, groupID, userID string) (*domain.TypingIndicator, error) {
	ind, err := s.typing.Upsert(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, domain.GroupEvent{Type: domain.EventTyping, GroupID: groupID, Payload: ind})
	return ind, nil
}

func (s *TypingService) Clear(ctx context.Context, groupID, userID string) error {
	if err := s.typing.Clear(ctx, groupID, userID); err != nil {
		return err
	}
	s.pub.Publish(ctx, domain.GroupEvent{
		Type:    domain.EventTypingCleared,
		GroupID: groupID,
		Payload: domain.MemberEventPayload{GroupID: groupID, UserID: userID},
	})
	return nil
}

func (s *TypingService) Active(ctx context.Context, groupID string) ([]domain.TypingIndicator, error) {
	return s.typing.ListActive(ctx, groupID, s.ttl)
}

// Sweep удаляет индикаторы старше TTL.
func (s *TypingService) Sweep(ctx context.Context) (int64, error) {
	return s.typing.DeleteStale(ctx, s.ttl)
}
