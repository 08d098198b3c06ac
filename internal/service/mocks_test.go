package service

import (
	"context"
	"sync"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/objectstore"

	"github.com/stretchr/testify/mock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.GroupEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.GroupEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Save(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	args := m.Called(ctx, msg)
	out, _ := args.Get(0).(*domain.ChatMessage)
	return out, args.Error(1)
}

func (m *mockMessageRepo) UpdateContent(ctx context.Context, id, content string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, id, content)
	out, _ := args.Get(0).(*domain.ChatMessage)
	return out, args.Error(1)
}

func (m *mockMessageRepo) History(ctx context.Context, groupID, before string, limit int) ([]domain.ChatMessage, string, error) {
	args := m.Called(ctx, groupID, before, limit)
	out, _ := args.Get(0).([]domain.ChatMessage)
	return out, args.String(1), args.Error(2)
}

type mockGroupRepo struct{ mock.Mock }

func (m *mockGroupRepo) Get(ctx context.Context, id string) (*domain.ChatGroup, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*domain.ChatGroup)
	return out, args.Error(1)
}

func (m *mockGroupRepo) ListByBusiness(ctx context.Context, businessID string) ([]domain.ChatGroup, error) {
	args := m.Called(ctx, businessID)
	out, _ := args.Get(0).([]domain.ChatGroup)
	return out, args.Error(1)
}

func (m *mockGroupRepo) ListForMember(ctx context.Context, businessID, userID string) ([]domain.ChatGroupSummary, error) {
	args := m.Called(ctx, businessID, userID)
	out, _ := args.Get(0).([]domain.ChatGroupSummary)
	return out, args.Error(1)
}

func (m *mockGroupRepo) CreateWithAdmin(ctx context.Context, g *domain.ChatGroup) (*domain.ChatGroup, *domain.GroupMember, error) {
	args := m.Called(ctx, g)
	out, _ := args.Get(0).(*domain.ChatGroup)
	mem, _ := args.Get(1).(*domain.GroupMember)
	return out, mem, args.Error(2)
}

func (m *mockGroupRepo) Update(ctx context.Context, id string, patch domain.GroupPatch) (*domain.ChatGroup, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(*domain.ChatGroup)
	return out, args.Error(1)
}

type mockMemberRepo struct{ mock.Mock }

func (m *mockMemberRepo) List(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	args := m.Called(ctx, groupID)
	out, _ := args.Get(0).([]domain.GroupMember)
	return out, args.Error(1)
}

func (m *mockMemberRepo) Get(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID)
	out, _ := args.Get(0).(*domain.GroupMember)
	return out, args.Error(1)
}

func (m *mockMemberRepo) Exists(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMemberRepo) Add(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID, isAdmin)
	out, _ := args.Get(0).(*domain.GroupMember)
	return out, args.Error(1)
}

func (m *mockMemberRepo) SetAdmin(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID, isAdmin)
	out, _ := args.Get(0).(*domain.GroupMember)
	return out, args.Error(1)
}

func (m *mockMemberRepo) Remove(ctx context.Context, groupID, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}

type mockInvitationRepo struct{ mock.Mock }

func (m *mockInvitationRepo) GetByCode(ctx context.Context, code string) (*domain.GroupInvitation, error) {
	args := m.Called(ctx, code)
	out, _ := args.Get(0).(*domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitationRepo) ListByGroup(ctx context.Context, groupID string) ([]domain.GroupInvitation, error) {
	args := m.Called(ctx, groupID)
	out, _ := args.Get(0).([]domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitationRepo) Create(ctx context.Context, inv *domain.GroupInvitation) (*domain.GroupInvitation, error) {
	args := m.Called(ctx, inv)
	out, _ := args.Get(0).(*domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitationRepo) Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.GroupInvitation, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(*domain.GroupInvitation)
	return out, args.Error(1)
}

func (m *mockInvitationRepo) Accept(ctx context.Context, code, userID string, now time.Time) (*domain.JoinResult, error) {
	args := m.Called(ctx, code, userID, now)
	out, _ := args.Get(0).(*domain.JoinResult)
	return out, args.Error(1)
}

func (m *mockInvitationRepo) DeactivateStale(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockTypingRepo struct{ mock.Mock }

func (m *mockTypingRepo) Upsert(ctx context.Context, groupID, userID string) (*domain.TypingIndicator, error) {
	args := m.Called(ctx, groupID, userID)
	out, _ := args.Get(0).(*domain.TypingIndicator)
	return out, args.Error(1)
}

func (m *mockTypingRepo) ListActive(ctx context.Context, groupID string, within time.Duration) ([]domain.TypingIndicator, error) {
	args := m.Called(ctx, groupID, within)
	out, _ := args.Get(0).([]domain.TypingIndicator)
	return out, args.Error(1)
}

func (m *mockTypingRepo) Clear(ctx context.Context, groupID, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}

func (m *mockTypingRepo) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) ListByBusiness(ctx context.Context, businessID string) ([]domain.GeneratedImage, error) {
	args := m.Called(ctx, businessID)
	out, _ := args.Get(0).([]domain.GeneratedImage)
	return out, args.Error(1)
}

func (m *mockImageRepo) Create(ctx context.Context, img *domain.GeneratedImage) (*domain.GeneratedImage, error) {
	args := m.Called(ctx, img)
	out, _ := args.Get(0).(*domain.GeneratedImage)
	return out, args.Error(1)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) Download(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Upload(ctx context.Context, objectPath string, data []byte) (*objectstore.UploadResult, error) {
	args := m.Called(ctx, objectPath, data)
	out, _ := args.Get(0).(*objectstore.UploadResult)
	return out, args.Error(1)
}
