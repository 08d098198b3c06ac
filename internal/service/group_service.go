package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"
)

type GroupService struct {
	groups GroupRepo
}

func NewGroupService(groups GroupRepo) *GroupService {
	return &GroupService{groups: groups}
}

func (s *GroupService) Get(ctx context.Context, id string) (*domain.ChatGroup, error) {
	return s.groups.Get(ctx, id)
}

func (s *GroupService) ListByBusiness(ctx context.Context, businessID string) ([]domain.ChatGroup, error) {
	return s.groups.ListByBusiness(ctx, businessID)
}

// ListForMember: только группы, где пользователь состоит, с числом участников.
func (s *GroupService) ListForMember(ctx context.Context, businessID, userID string) ([]domain.ChatGroupSummary, error) {
	return s.groups.ListForMember(ctx, businessID, userID)
}

// Create создаёт группу; создатель становится её админом.
func (s *GroupService) Create(ctx context.Context, g *domain.ChatGroup) (*domain.ChatGroup, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return nil, invalid("name is required")
	}
	if g.Description != nil {
		d := strings.TrimSpace(*g.Description)
		if d == "" {
			g.Description = nil
		} else {
			g.Description = &d
		}
	}

	created, _, err := s.groups.CreateWithAdmin(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("groups.CreateWithAdmin: %w", err)
	}
	return created, nil
}

func (s *GroupService) Update(ctx context.Context, id string, patch domain.GroupPatch) (*domain.ChatGroup, error) {
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return nil, invalid("name must not be empty")
		}
		patch.Name = &n
	}
	return s.groups.Update(ctx, id, patch)
}

type MemberService struct {
	members MemberRepo
	pub     Publisher
}

func NewMemberService(members MemberRepo, pub Publisher) *MemberService {
	return &MemberService{members: members, pub: publisherOrNop(pub)}
}

func (s *MemberService) List(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	return s.members.List(ctx, groupID)
}

func (s *MemberService) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	return s.members.Exists(ctx, groupID, userID)
}

func (s *MemberService) Add(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	m, err := s.members.Add(ctx, groupID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, domain.GroupEvent{
		Type:    domain.EventMemberJoined,
		GroupID: groupID,
		Payload: m,
	})
	return m, nil
}

func (s *MemberService) SetAdmin(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	m, err := s.members.SetAdmin(ctx, groupID, userID, isAdmin)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotMember
	}
	return m, err
}

// Remove удаляет ровно одно членство.
func (s *MemberService) Remove(ctx context.Context, groupID, userID string) error {
	if err := s.members.Remove(ctx, groupID, userID); err != nil {
		return err
	}
	s.pub.Publish(ctx, domain.GroupEvent{
		Type:    domain.EventMemberLeft,
		GroupID: groupID,
		Payload: domain.MemberEventPayload{GroupID: groupID, UserID: userID},
	})
	return nil
}
