package http

import (
	"context"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/service"

	"github.com/stretchr/testify/mock"
)

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) Get(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*domain.Profile)
	return out, args.Error(1)
}

func (m *mockProfiles) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).(*domain.Profile)
	return out, args.Error(1)
}

func (m *mockProfiles) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(*domain.Profile)
	return out, args.Error(1)
}

func (m *mockProfiles) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(*domain.Profile)
	return out, args.Error(1)
}

type mockMembers struct{ mock.Mock }

func (m *mockMembers) List(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	args := m.Called(ctx, groupID)
	out, _ := args.Get(0).([]domain.GroupMember)
	return out, args.Error(1)
}

func (m *mockMembers) Add(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID, isAdmin)
	out, _ := args.Get(0).(*domain.GroupMember)
	return out, args.Error(1)
}

func (m *mockMembers) SetAdmin(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID, isAdmin)
	out, _ := args.Get(0).(*domain.GroupMember)
	return out, args.Error(1)
}

func (m *mockMembers) Remove(ctx context.Context, groupID, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}

type mockInvitations struct{ mock.Mock }

func (m *mockInvitations) Create(ctx context.Context, in service.CreateInvitationInput) (*domain.GroupInvitation, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitations) GetByCode(ctx context.Context, code string) (*domain.GroupInvitation, error) {
	args := m.Called(ctx, code)
	out, _ := args.Get(0).(*domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitations) ListByGroup(ctx context.Context, groupID string) ([]domain.GroupInvitation, error) {
	args := m.Called(ctx, groupID)
	out, _ := args.Get(0).([]domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitations) Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.GroupInvitation, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(*domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitations) Accept(ctx context.Context, code, userID string) (*domain.JoinResult, error) {
	args := m.Called(ctx, code, userID)
	out, _ := args.Get(0).(*domain.JoinResult)
	return out, args.Error(1)
}

type mockChat struct{ mock.Mock }

func (m *mockChat) Send(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	args := m.Called(ctx, msg)
	out, _ := args.Get(0).(*domain.ChatMessage)
	return out, args.Error(1)
}

func (m *mockChat) Edit(ctx context.Context, id, content string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, id, content)
	out, _ := args.Get(0).(*domain.ChatMessage)
	return out, args.Error(1)
}

func (m *mockChat) History(ctx context.Context, groupID, before string, limit int) ([]domain.ChatMessage, string, error) {
	args := m.Called(ctx, groupID, before, limit)
	out, _ := args.Get(0).([]domain.ChatMessage)
	return out, args.String(1), args.Error(2)
}

type mockTyping struct{ mock.Mock }

func (m *mockTyping) Touch(ctx context.Context, groupID, userID string) (*domain.TypingIndicator, error) {
	args := m.Called(ctx, groupID, userID)
	out, _ := args.Get(0).(*domain.TypingIndicator)
	return out, args.Error(1)
}

func (m *mockTyping) Clear(ctx context.Context, groupID, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}

func (m *mockTyping) Active(ctx context.Context, groupID string) ([]domain.TypingIndicator, error) {
	args := m.Called(ctx, groupID)
	out, _ := args.Get(0).([]domain.TypingIndicator)
	return out, args.Error(1)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) ListByBusiness(ctx context.Context, businessID string) ([]domain.GeneratedImage, error) {
	args := m.Called(ctx, businessID)
	out, _ := args.Get(0).([]domain.GeneratedImage)
	return out, args.Error(1)
}

func (m *mockImages) Generate(ctx context.Context, in service.GenerateImageInput) (*domain.GeneratedImage, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*domain.GeneratedImage)
	return out, args.Error(1)
}

type mockDashboard struct{ mock.Mock }

func (m *mockDashboard) Get(ctx context.Context, businessID string) (*domain.Dashboard, error) {
	args := m.Called(ctx, businessID)
	out, _ := args.Get(0).(*domain.Dashboard)
	return out, args.Error(1)
}

type mockLedger struct{ mock.Mock }

func (m *mockLedger) List(ctx context.Context, businessID string, typ domain.TransactionType) ([]domain.Transaction, error) {
	args := m.Called(ctx, businessID, typ)
	out, _ := args.Get(0).([]domain.Transaction)
	return out, args.Error(1)
}

func (m *mockLedger) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, t)
	out, _ := args.Get(0).(*domain.Transaction)
	return out, args.Error(1)
}

func (m *mockLedger) Update(ctx context.Context, id string, p domain.TransactionPatch) (*domain.Transaction, error) {
	args := m.Called(ctx, id, p)
	out, _ := args.Get(0).(*domain.Transaction)
	return out, args.Error(1)
}

func (m *mockLedger) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }
