package postgres

import (
	"context"
	"fmt"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GroupRepository struct {
	db *pgxpool.Pool
}

func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

func groupDest(g *domain.ChatGroup) []any {
	return []any{&g.ID, &g.Name, &g.Description, &g.BusinessID, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt}
}

func scanGroup(row pgx.Row) (*domain.ChatGroup, error) {
	var g domain.ChatGroup
	if err := row.Scan(groupDest(&g)...); err != nil {
		return nil, mapPgError(err)
	}
	return &g, nil
}

func (r *GroupRepository) Get(ctx context.Context, id string) (*domain.ChatGroup, error) {
	return scanGroup(r.db.QueryRow(ctx, q.QueryGetGroupByID, id))
}

func (r *GroupRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.ChatGroup, error) {
	rows, err := r.db.Query(ctx, q.QueryListGroupsByBusiness, businessID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.ChatGroup, 0, 8)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, mapPgError(rows.Err())
}

func (r *GroupRepository) ListForMember(ctx context.Context, businessID, userID string) ([]domain.ChatGroupSummary, error) {
	rows, err := r.db.Query(ctx, q.QueryListGroupsForMember, businessID, userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.ChatGroupSummary, 0, 8)
	for rows.Next() {
		var s domain.ChatGroupSummary
		dest := append(groupDest(&s.ChatGroup), &s.MemberCount, &s.IsAdmin)
		if err := rows.Scan(dest...); err != nil {
			return nil, mapPgError(err)
		}
		out = append(out, s)
	}
	return out, mapPgError(rows.Err())
}

// CreateWithAdmin создаёт группу и сразу добавляет создателя админом, в одной транзакции.
func (r *GroupRepository) CreateWithAdmin(ctx context.Context, g *domain.ChatGroup) (*domain.ChatGroup, *domain.GroupMember, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	created, err := scanGroup(tx.QueryRow(ctx, q.QueryInsertGroup, g.Name, g.Description, g.BusinessID, g.CreatedBy))
	if err != nil {
		return nil, nil, fmt.Errorf("insert group: %w", err)
	}

	var admin *domain.GroupMember
	if g.CreatedBy != nil {
		admin, err = insertMember(ctx, tx, created.ID, *g.CreatedBy, true)
		if err != nil {
			return nil, nil, fmt.Errorf("insert admin member: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return created, admin, nil
}

func (r *GroupRepository) Update(ctx context.Context, id string, patch domain.GroupPatch) (*domain.ChatGroup, error) {
	return scanGroup(r.db.QueryRow(ctx, q.QueryUpdateGroup, id, patch.Name, patch.Description))
}
