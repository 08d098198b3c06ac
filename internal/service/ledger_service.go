package service

import (
	"context"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"
)

type LedgerService struct {
	txs TransactionRepo
}

func NewLedgerService(txs TransactionRepo) *LedgerService {
	return &LedgerService{txs: txs}
}

func validTxType(t domain.TransactionType) bool {
	return t == domain.TransactionIncome || t == domain.TransactionExpense
}

func (s *LedgerService) List(ctx context.Context, businessID string, typ domain.TransactionType) ([]domain.Transaction, error) {
	if typ != "" && !validTxType(typ) {
		return nil, invalid("type must be income or expense")
	}
	return s.txs.ListByBusiness(ctx, businessID, typ)
}

func (s *LedgerService) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	if !validTxType(t.Type) {
		return nil, invalid("type must be income or expense")
	}
	if t.Amount < 0 {
		return nil, invalid("amount must not be negative")
	}
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	return s.txs.Create(ctx, t)
}

func (s *LedgerService) Update(ctx context.Context, id string, p domain.TransactionPatch) (*domain.Transaction, error) {
	if p.Type != nil && !validTxType(*p.Type) {
		return nil, invalid("type must be income or expense")
	}
	if p.Amount != nil && *p.Amount < 0 {
		return nil, invalid("amount must not be negative")
	}
	return s.txs.Update(ctx, id, p)
}

func (s *LedgerService) Delete(ctx context.Context, id string) error {
	return s.txs.Delete(ctx, id)
}

type DocumentService struct {
	docs DocumentRepo
}

func NewDocumentService(docs DocumentRepo) *DocumentService {
	return &DocumentService{docs: docs}
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (s *DocumentService) List(ctx context.Context, businessID, search string) ([]domain.Document, error) {
	return s.docs.ListByBusiness(ctx, businessID, strings.TrimSpace(search))
}

func (s *DocumentService) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return nil, invalid("title is required")
	}
	d.Tags = normalizeTags(d.Tags)
	return s.docs.Create(ctx, d)
}

func (s *DocumentService) Update(ctx context.Context, id string, p domain.DocumentPatch) (*domain.Document, error) {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return nil, invalid("title must not be empty")
		}
		p.Title = &t
	}
	if p.Tags != nil {
		p.Tags = normalizeTags(p.Tags)
	}
	return s.docs.Update(ctx, id, p)
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.docs.Delete(ctx, id)
}

type ContactService struct {
	contacts ContactRepo
}

func NewContactService(contacts ContactRepo) *ContactService {
	return &ContactService{contacts: contacts}
}

func validStatus(s domain.ContactStatus) bool {
	switch s {
	case domain.ContactLead, domain.ContactCustomer, domain.ContactProspect:
		return true
	}
	return false
}

func (s *ContactService) List(ctx context.Context, businessID string, status domain.ContactStatus) ([]domain.Contact, error) {
	if status != "" && !validStatus(status) {
		return nil, invalid("status must be lead, customer or prospect")
	}
	return s.contacts.ListByBusiness(ctx, businessID, status)
}

func (s *ContactService) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, invalid("name is required")
	}
	if !validStatus(c.Status) {
		return nil, invalid("status must be lead, customer or prospect")
	}
	if c.Value < 0 {
		return nil, invalid("value must not be negative")
	}
	return s.contacts.Create(ctx, c)
}

func (s *ContactService) Update(ctx context.Context, id string, p domain.ContactPatch) (*domain.Contact, error) {
	if p.Status != nil && !validStatus(*p.Status) {
		return nil, invalid("status must be lead, customer or prospect")
	}
	if p.Value != nil && *p.Value < 0 {
		return nil, invalid("value must not be negative")
	}
	return s.contacts.Update(ctx, id, p)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}
