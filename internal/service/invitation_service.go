package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/metrics"
)

// CodeGenerator выдаёт код приглашения; по умолчанию security.InvitationCode.
type CodeGenerator func() (string, error)

type InvitationService struct {
	invites InvitationRepo
	pub     Publisher
	newCode CodeGenerator
	now     func() time.Time
}

func NewInvitationService(invites InvitationRepo, pub Publisher, newCode CodeGenerator) *InvitationService {
	return &InvitationService{
		invites: invites,
		pub:     publisherOrNop(pub),
		newCode: newCode,
		now:     time.Now,
	}
}

type CreateInvitationInput struct {
	GroupID       string
	CreatedBy     string
	ExpiresAt     *time.Time
	ExpiresInDays *int
	MaxUses       *int
}

const maxCodeAttempts = 3

func (s *InvitationService) Create(ctx context.Context, in CreateInvitationInput) (*domain.GroupInvitation, error) {
	if in.MaxUses != nil && *in.MaxUses <= 0 {
		return nil, invalid("maxUses must be positive")
	}

	expiresAt := in.ExpiresAt
	if expiresAt == nil && in.ExpiresInDays != nil {
		if *in.ExpiresInDays <= 0 {
			return nil, invalid("expiresInDays must be positive")
		}
		t := s.now().Add(time.Duration(*in.ExpiresInDays) * 24 * time.Hour)
		expiresAt = &t
	}
	if expiresAt != nil && !expiresAt.After(s.now()) {
		return nil, invalid("expiresAt must be in the future")
	}

	// коллизия кода маловероятна, но unique-индекс её поймает
	for attempt := 1; ; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
		inv, err := s.invites.Create(ctx, &domain.GroupInvitation{
			GroupID:        in.GroupID,
			CreatedBy:      in.CreatedBy,
			InvitationCode: code,
			ExpiresAt:      expiresAt,
			MaxUses:        in.MaxUses,
		})
		if errors.Is(err, domain.ErrAlreadyExists) && attempt < maxCodeAttempts {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("invites.Create: %w", err)
		}
		return inv, nil
	}
}

func (s *InvitationService) GetByCode(ctx context.Context, code string) (*domain.GroupInvitation, error) {
	return s.invites.GetByCode(ctx, code)
}

func (s *InvitationService) ListByGroup(ctx context.Context, groupID string) ([]domain.GroupInvitation, error) {
	return s.invites.ListByGroup(ctx, groupID)
}

func (s *InvitationService) Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.GroupInvitation, error) {
	if patch.MaxUses != nil && *patch.MaxUses <= 0 {
		return nil, invalid("maxUses must be positive")
	}
	return s.invites.Update(ctx, id, patch)
}

// Accept: повторное вступление участника не расходует использование.
func (s *InvitationService) Accept(ctx context.Context, code, userID string) (*domain.JoinResult, error) {
	res, err := s.invites.Accept(ctx, code, userID, s.now())
	if err != nil {
		metrics.InvitationsAccepted.WithLabelValues("rejected").Inc()
		return nil, err
	}
	metrics.InvitationsAccepted.WithLabelValues(string(res.Status)).Inc()

	if res.Status == domain.JoinStatusJoined && res.Member != nil {
		s.pub.Publish(ctx, domain.GroupEvent{
			Type:    domain.EventMemberJoined,
			GroupID: res.GroupID,
			Payload: res.Member,
		})
	}
	return res, nil
}

// DeactivateStale вызывается из периодической задачи.
func (s *InvitationService) DeactivateStale(ctx context.Context) (int64, error) {
	return s.invites.DeactivateStale(ctx)
}
