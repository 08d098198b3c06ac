package service

import (
	"context"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
)

// Интерфейсы хранилища; реализации в internal/postgres.

type ProfileRepo interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error)
}

type BusinessRepo interface {
	Get(ctx context.Context, id string) (*domain.BusinessAccount, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.BusinessAccount, error)
	Create(ctx context.Context, name, ownerID string) (*domain.BusinessAccount, error)
	Update(ctx context.Context, id string, name *string) (*domain.BusinessAccount, error)
}

type GroupRepo interface {
	Get(ctx context.Context, id string) (*domain.ChatGroup, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.ChatGroup, error)
	ListForMember(ctx context.Context, businessID, userID string) ([]domain.ChatGroupSummary, error)
	CreateWithAdmin(ctx context.Context, g *domain.ChatGroup) (*domain.ChatGroup, *domain.GroupMember, error)
	Update(ctx context.Context, id string, patch domain.GroupPatch) (*domain.ChatGroup, error)
}

type MemberRepo interface {
	List(ctx context.Context, groupID string) ([]domain.GroupMember, error)
	Get(ctx context.Context, groupID, userID string) (*domain.GroupMember, error)
	Exists(ctx context.Context, groupID, userID string) (bool, error)
	Add(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error)
	SetAdmin(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error)
	Remove(ctx context.Context, groupID, userID string) error
}

type InvitationRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.GroupInvitation, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.GroupInvitation, error)
	Create(ctx context.Context, inv *domain.GroupInvitation) (*domain.GroupInvitation, error)
	Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.GroupInvitation, error)
	Accept(ctx context.Context, code, userID string, now time.Time) (*domain.JoinResult, error)
	DeactivateStale(ctx context.Context) (int64, error)
}

type MessageRepo interface {
	Save(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
	UpdateContent(ctx context.Context, id, content string) (*domain.ChatMessage, error)
	History(ctx context.Context, groupID, before string, limit int) ([]domain.ChatMessage, string, error)
}

type TypingRepo interface {
	Upsert(ctx context.Context, groupID, userID string) (*domain.TypingIndicator, error)
	ListActive(ctx context.Context, groupID string, within time.Duration) ([]domain.TypingIndicator, error)
	Clear(ctx context.Context, groupID, userID string) error
	DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type ImageRepo interface {
	ListByBusiness(ctx context.Context, businessID string) ([]domain.GeneratedImage, error)
	Create(ctx context.Context, img *domain.GeneratedImage) (*domain.GeneratedImage, error)
}

type TransactionRepo interface {
	ListByBusiness(ctx context.Context, businessID string, typ domain.TransactionType) ([]domain.Transaction, error)
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, id string, p domain.TransactionPatch) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type DocumentRepo interface {
	ListByBusiness(ctx context.Context, businessID, search string) ([]domain.Document, error)
	Count(ctx context.Context, businessID string) (int, error)
	Create(ctx context.Context, d *domain.Document) (*domain.Document, error)
	Update(ctx context.Context, id string, p domain.DocumentPatch) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
}

type ContactRepo interface {
	ListByBusiness(ctx context.Context, businessID string, status domain.ContactStatus) ([]domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, id string, p domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

// Publisher рассылает события группы; доставка best-effort.
type Publisher interface {
	Publish(ctx context.Context, ev domain.GroupEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.GroupEvent) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func invalid(msg string) error {
	return &inputError{msg: msg}
}

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }
func (e *inputError) Unwrap() error { return domain.ErrInvalidInput }

// Public: текст проверки формулируется для клиента и отдаётся как есть.
func (e *inputError) Public() string { return e.msg }
