package http

import (
	"context"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/service"
)

// Интерфейсы сервисов, которые нужны обработчикам; реализации в internal/service.

type ProfileSvc interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error)
}

type BusinessSvc interface {
	Get(ctx context.Context, id string) (*domain.BusinessAccount, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.BusinessAccount, error)
	Create(ctx context.Context, name, ownerID string) (*domain.BusinessAccount, error)
	Update(ctx context.Context, id string, name *string) (*domain.BusinessAccount, error)
}

type GroupSvc interface {
	Get(ctx context.Context, id string) (*domain.ChatGroup, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.ChatGroup, error)
	ListForMember(ctx context.Context, businessID, userID string) ([]domain.ChatGroupSummary, error)
	Create(ctx context.Context, g *domain.ChatGroup) (*domain.ChatGroup, error)
	Update(ctx context.Context, id string, patch domain.GroupPatch) (*domain.ChatGroup, error)
}

type MemberSvc interface {
	List(ctx context.Context, groupID string) ([]domain.GroupMember, error)
	Add(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error)
	SetAdmin(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error)
	Remove(ctx context.Context, groupID, userID string) error
}

type InvitationSvc interface {
	Create(ctx context.Context, in service.CreateInvitationInput) (*domain.GroupInvitation, error)
	GetByCode(ctx context.Context, code string) (*domain.GroupInvitation, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.GroupInvitation, error)
	Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.GroupInvitation, error)
	Accept(ctx context.Context, code, userID string) (*domain.JoinResult, error)
}

type ChatSvc interface {
	Send(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
	Edit(ctx context.Context, id, content string) (*domain.ChatMessage, error)
	History(ctx context.Context, groupID, before string, limit int) ([]domain.ChatMessage, string, error)
}

type TypingSvc interface {
	Touch(ctx context.Context, groupID, userID string) (*domain.TypingIndicator, error)
	Clear(ctx context.Context, groupID, userID string) error
	Active(ctx context.Context, groupID string) ([]domain.TypingIndicator, error)
}

type ImageSvc interface {
	ListByBusiness(ctx context.Context, businessID string) ([]domain.GeneratedImage, error)
	Generate(ctx context.Context, in service.GenerateImageInput) (*domain.GeneratedImage, error)
}

type LedgerSvc interface {
	List(ctx context.Context, businessID string, typ domain.TransactionType) ([]domain.Transaction, error)
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, id string, p domain.TransactionPatch) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type DocumentSvc interface {
	List(ctx context.Context, businessID, search string) ([]domain.Document, error)
	Create(ctx context.Context, d *domain.Document) (*domain.Document, error)
	Update(ctx context.Context, id string, p domain.DocumentPatch) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
}

type ContactSvc interface {
	List(ctx context.Context, businessID string, status domain.ContactStatus) ([]domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, id string, p domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

type DashboardSvc interface {
	Get(ctx context.Context, businessID string) (*domain.Dashboard, error)
}

// Services собирает зависимости обработчиков; nil-поля допустимы в тестах.
type Services struct {
	Profiles    ProfileSvc
	Businesses  BusinessSvc
	Groups      GroupSvc
	Members     MemberSvc
	Invitations InvitationSvc
	Chat        ChatSvc
	Typing      TypingSvc
	Images      ImageSvc
	Ledger      LedgerSvc
	Documents   DocumentSvc
	Contacts    ContactSvc
	Dashboard   DashboardSvc
}

var (
	_ ProfileSvc    = (*service.ProfileService)(nil)
	_ BusinessSvc   = (*service.BusinessService)(nil)
	_ GroupSvc      = (*service.GroupService)(nil)
	_ MemberSvc     = (*service.MemberService)(nil)
	_ InvitationSvc = (*service.InvitationService)(nil)
	_ ChatSvc       = (*service.ChatService)(nil)
	_ TypingSvc     = (*service.TypingService)(nil)
	_ ImageSvc      = (*service.ImageService)(nil)
	_ LedgerSvc     = (*service.LedgerService)(nil)
	_ DocumentSvc   = (*service.DocumentService)(nil)
	_ ContactSvc    = (*service.ContactService)(nil)
	_ DashboardSvc  = (*service.DashboardService)(nil)
)
