package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvitationRepository struct {
	db *pgxpool.Pool
}

func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func scanInvitation(row pgx.Row) (*domain.GroupInvitation, error) {
	var (
		inv     domain.GroupInvitation
		maxUses *int32
	)
	if err := row.Scan(&inv.ID, &inv.GroupID, &inv.CreatedBy, &inv.InvitationCode,
		&inv.ExpiresAt, &maxUses, &inv.CurrentUses, &inv.IsActive, &inv.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if maxUses != nil {
		v := int(*maxUses)
		inv.MaxUses = &v
	}
	return &inv, nil
}

func (r *InvitationRepository) GetByCode(ctx context.Context, code string) (*domain.GroupInvitation, error) {
	return scanInvitation(r.db.QueryRow(ctx, q.QueryGetInvitationByCode, code))
}

func (r *InvitationRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.GroupInvitation, error) {
	rows, err := r.db.Query(ctx, q.QueryListInvitationsByGroup, groupID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.GroupInvitation, 0, 4)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, mapPgError(rows.Err())
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domain.GroupInvitation) (*domain.GroupInvitation, error) {
	return scanInvitation(r.db.QueryRow(ctx, q.QueryInsertInvitation,
		inv.GroupID, inv.CreatedBy, inv.InvitationCode, inv.ExpiresAt, inv.MaxUses))
}

func (r *InvitationRepository) Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.GroupInvitation, error) {
	return scanInvitation(r.db.QueryRow(ctx, q.QueryUpdateInvitation, id, patch.IsActive, patch.MaxUses, patch.ExpiresAt))
}

// Accept: строка приглашения блокируется FOR UPDATE, так что параллельные
// вступления по одному коду не превысят max_uses.
func (r *InvitationRepository) Accept(ctx context.Context, code, userID string, now time.Time) (*domain.JoinResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inv, err := scanInvitation(tx.QueryRow(ctx, q.QueryLockInvitationByCode, code))
	if err != nil {
		return nil, err
	}
	if err := inv.Usable(now); err != nil {
		return nil, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, q.QueryMemberExists, inv.GroupID, userID).Scan(&exists); err != nil {
		return nil, mapPgError(err)
	}
	if exists {
		return &domain.JoinResult{Status: domain.JoinStatusAlreadyMember, GroupID: inv.GroupID}, nil
	}

	member, err := insertMember(ctx, tx, inv.GroupID, userID, false)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return &domain.JoinResult{Status: domain.JoinStatusAlreadyMember, GroupID: inv.GroupID}, nil
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	if _, err := tx.Exec(ctx, q.QueryIncrementInvitationUses, inv.ID); err != nil {
		return nil, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &domain.JoinResult{Status: domain.JoinStatusJoined, GroupID: inv.GroupID, Member: member}, nil
}

// DeactivateStale выключает истёкшие и исчерпанные приглашения.
func (r *InvitationRepository) DeactivateStale(ctx context.Context) (int64, error) {
	cmd, err := r.db.Exec(ctx, q.QueryDeactivateExpiredInvitations)
	if err != nil {
		return 0, mapPgError(err)
	}
	return cmd.RowsAffected(), nil
}
