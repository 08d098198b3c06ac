package postgres

import (
	"context"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p    domain.Profile
		role string
	)
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	p.Role = domain.Role(role)
	return &p, nil
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, q.QueryGetProfileByID, id))
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, q.QueryGetProfileByEmail, email))
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, q.QueryInsertProfile,
		p.ID, p.Email, p.FullName, p.AvatarURL, orNil(string(p.Role))))
}

func (r *ProfileRepository) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error) {
	var role any
	if patch.Role != nil {
		role = string(*patch.Role)
	}
	return scanProfile(r.db.QueryRow(ctx, q.QueryUpdateProfile,
		id, patch.Email, patch.FullName, patch.AvatarURL, role))
}

type BusinessRepository struct {
	db *pgxpool.Pool
}

func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func scanBusiness(row pgx.Row) (*domain.BusinessAccount, error) {
	var b domain.BusinessAccount
	if err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &b, nil
}

func (r *BusinessRepository) Get(ctx context.Context, id string) (*domain.BusinessAccount, error) {
	return scanBusiness(r.db.QueryRow(ctx, q.QueryGetBusinessByID, id))
}

func (r *BusinessRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.BusinessAccount, error) {
	rows, err := r.db.Query(ctx, q.QueryListBusinessesByOwner, ownerID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.BusinessAccount, 0, 4)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, mapPgError(rows.Err())
}

func (r *BusinessRepository) Create(ctx context.Context, name, ownerID string) (*domain.BusinessAccount, error) {
	return scanBusiness(r.db.QueryRow(ctx, q.QueryInsertBusiness, name, ownerID))
}

func (r *BusinessRepository) Update(ctx context.Context, id string, name *string) (*domain.BusinessAccount, error) {
	return scanBusiness(r.db.QueryRow(ctx, q.QueryUpdateBusiness, id, name))
}
