package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"
)

type ProfileService struct {
	profiles ProfileRepo
}

func NewProfileService(profiles ProfileRepo) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profiles.Get(ctx, id)
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return s.profiles.GetByEmail(ctx, strings.TrimSpace(email))
}

func (s *ProfileService) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if p.Role == "" {
		p.Role = domain.RoleBusinessManager
	}
	if !p.Role.Valid() {
		return nil, invalid("role must be business_owner or business_manager")
	}
	created, err := s.profiles.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("profiles.Create: %w", err)
	}
	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, invalid("role must be business_owner or business_manager")
	}
	return s.profiles.Update(ctx, id, patch)
}

type BusinessService struct {
	businesses BusinessRepo
}

func NewBusinessService(businesses BusinessRepo) *BusinessService {
	return &BusinessService{businesses: businesses}
}

func (s *BusinessService) Get(ctx context.Context, id string) (*domain.BusinessAccount, error) {
	return s.businesses.Get(ctx, id)
}

func (s *BusinessService) ListByOwner(ctx context.Context, ownerID string) ([]domain.BusinessAccount, error) {
	return s.businesses.ListByOwner(ctx, ownerID)
}

func (s *BusinessService) Create(ctx context.Context, name, ownerID string) (*domain.BusinessAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	b, err := s.businesses.Create(ctx, name, ownerID)
	if err != nil {
		return nil, fmt.Errorf("businesses.Create: %w", err)
	}
	return b, nil
}

func (s *BusinessService) Update(ctx context.Context, id string, name *string) (*domain.BusinessAccount, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, invalid("name must not be empty")
		}
		name = &trimmed
	}
	return s.businesses.Update(ctx, id, name)
}
