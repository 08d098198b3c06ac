package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedCodes(codes ...string) CodeGenerator {
	i := 0
	return func() (string, error) {
		if i >= len(codes) {
			return "", errors.New("out of codes")
		}
		c := codes[i]
		i++
		return c, nil
	}
}

func TestInvitationService_CreateExpiresInDays(t *testing.T) {
	repo := &mockInvitationRepo{}
	svc := NewInvitationService(repo, nil, fixedCodes("code-1"))
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	days, uses := 7, 3

	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.GroupInvitation) bool {
		return inv.InvitationCode == "code-1" &&
			inv.ExpiresAt != nil && inv.ExpiresAt.Equal(now.Add(7*24*time.Hour)) &&
			*inv.MaxUses == 3
	})).Return(&domain.GroupInvitation{ID: "i1", InvitationCode: "code-1", IsActive: true}, nil)

	inv, err := svc.Create(context.Background(), CreateInvitationInput{GroupID: "g", CreatedBy: "u", ExpiresInDays: &days, MaxUses: &uses})
	require.NoError(t, err)
	require.Equal(t, "code-1", inv.InvitationCode)
}

func TestInvitationService_CreateValidation(t *testing.T) {
	svc := NewInvitationService(&mockInvitationRepo{}, nil, fixedCodes())
	zero := 0
	past := time.Now().Add(-time.Hour)

	_, err := svc.Create(context.Background(), CreateInvitationInput{MaxUses: &zero})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Create(context.Background(), CreateInvitationInput{ExpiresInDays: &zero})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Create(context.Background(), CreateInvitationInput{ExpiresAt: &past})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvitationService_CreateRetriesOnCollision(t *testing.T) {
	repo := &mockInvitationRepo{}
	svc := NewInvitationService(repo, nil, fixedCodes("dup", "fresh"))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.GroupInvitation) bool { return inv.InvitationCode == "dup" })).
		Return(nil, domain.ErrAlreadyExists).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.GroupInvitation) bool { return inv.InvitationCode == "fresh" })).
		Return(&domain.GroupInvitation{InvitationCode: "fresh"}, nil).Once()

	inv, err := svc.Create(context.Background(), CreateInvitationInput{GroupID: "g", CreatedBy: "u"})
	require.NoError(t, err)
	require.Equal(t, "fresh", inv.InvitationCode)
	repo.AssertExpectations(t)
}

func TestInvitationService_AcceptPublishesOnlyOnJoin(t *testing.T) {
	repo := &mockInvitationRepo{}
	pub := &recordingPublisher{}
	svc := NewInvitationService(repo, pub, fixedCodes())

	repo.On("Accept", mock.Anything, "c", "u1", mock.Anything).
		Return(&domain.JoinResult{Status: domain.JoinStatusJoined, GroupID: "g", Member: &domain.GroupMember{UserID: "u1"}}, nil).Once()
	repo.On("Accept", mock.Anything, "c", "u1", mock.Anything).
		Return(&domain.JoinResult{Status: domain.JoinStatusAlreadyMember, GroupID: "g"}, nil).Once()
	repo.On("Accept", mock.Anything, "c", "u2", mock.Anything).
		Return(nil, domain.ErrInvitationExhausted).Once()

	res, err := svc.Accept(context.Background(), "c", "u1")
	require.NoError(t, err)
	require.Equal(t, domain.JoinStatusJoined, res.Status)

	res, err = svc.Accept(context.Background(), "c", "u1")
	require.NoError(t, err)
	require.Equal(t, domain.JoinStatusAlreadyMember, res.Status)

	_, err = svc.Accept(context.Background(), "c", "u2")
	require.ErrorIs(t, err, domain.ErrInvitationExhausted)

	require.Equal(t, []string{domain.EventMemberJoined}, pub.types())
}
