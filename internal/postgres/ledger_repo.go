package postgres

import (
	"context"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t    domain.Transaction
		date time.Time
		typ  string
	)
	if err := row.Scan(&t.ID, &t.BusinessID, &date, &t.Description, &t.Amount, &typ, &t.Category, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	t.Date = domain.NewDate(date)
	t.Type = domain.TransactionType(typ)
	return &t, nil
}

// typ пустой: все типы
func (r *TransactionRepository) ListByBusiness(ctx context.Context, businessID string, typ domain.TransactionType) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, q.QueryListTransactions, businessID, orNil(string(typ)))
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0, 32)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, mapPgError(rows.Err())
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	return scanTransaction(r.db.QueryRow(ctx, q.QueryInsertTransaction,
		t.BusinessID, t.Date.Time, t.Description, t.Amount, string(t.Type), t.Category))
}

func (r *TransactionRepository) Update(ctx context.Context, id string, p domain.TransactionPatch) (*domain.Transaction, error) {
	var date, typ any
	if p.Date != nil {
		date = p.Date.Time
	}
	if p.Type != nil {
		typ = string(*p.Type)
	}
	return scanTransaction(r.db.QueryRow(ctx, q.QueryUpdateTransaction, id, date, p.Description, p.Amount, typ, p.Category))
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.db, q.QueryDeleteTransaction, id)
}

type DocumentRepository struct {
	db *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	if err := row.Scan(&d.ID, &d.BusinessID, &d.Title, &d.Content, &d.Tags, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return &d, nil
}

func (r *DocumentRepository) ListByBusiness(ctx context.Context, businessID, search string) ([]domain.Document, error) {
	var pattern any
	if search != "" {
		pattern = "%" + escapeLike(search) + "%"
	}
	rows, err := r.db.Query(ctx, q.QueryListDocuments, businessID, orNil(search), pattern)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.Document, 0, 16)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, mapPgError(rows.Err())
}

func (r *DocumentRepository) Count(ctx context.Context, businessID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, q.QueryCountDocuments, businessID).Scan(&n)
	return n, mapPgError(err)
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return scanDocument(r.db.QueryRow(ctx, q.QueryInsertDocument, d.BusinessID, d.Title, d.Content, tags))
}

func (r *DocumentRepository) Update(ctx context.Context, id string, p domain.DocumentPatch) (*domain.Document, error) {
	return scanDocument(r.db.QueryRow(ctx, q.QueryUpdateDocument, id, p.Title, p.Content, p.Tags))
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.db, q.QueryDeleteDocument, id)
}

type ContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var (
		c      domain.Contact
		status string
	)
	if err := row.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.Company, &status, &c.Value, &c.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	c.Status = domain.ContactStatus(status)
	return &c, nil
}

func (r *ContactRepository) ListByBusiness(ctx context.Context, businessID string, status domain.ContactStatus) ([]domain.Contact, error) {
	rows, err := r.db.Query(ctx, q.QueryListContacts, businessID, orNil(string(status)))
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.Contact, 0, 32)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, mapPgError(rows.Err())
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	return scanContact(r.db.QueryRow(ctx, q.QueryInsertContact,
		c.BusinessID, c.Name, c.Email, c.Phone, c.Company, string(c.Status), c.Value))
}

func (r *ContactRepository) Update(ctx context.Context, id string, p domain.ContactPatch) (*domain.Contact, error) {
	var status any
	if p.Status != nil {
		status = string(*p.Status)
	}
	return scanContact(r.db.QueryRow(ctx, q.QueryUpdateContact, id, p.Name, p.Email, p.Phone, p.Company, status, p.Value))
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.db, q.QueryDeleteContact, id)
}

func deleteOne(ctx context.Context, db querier, sql, id string) error {
	cmd, err := db.Exec(ctx, sql, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
