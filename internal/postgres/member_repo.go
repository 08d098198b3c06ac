package postgres

import (
	"context"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepository struct {
	db *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{db: db}
}

func scanMember(row pgx.Row) (*domain.GroupMember, error) {
	var m domain.GroupMember
	if err := row.Scan(&m.ID, &m.GroupID, &m.UserID, &m.JoinedAt, &m.IsAdmin); err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}

func insertMember(ctx context.Context, db querier, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	return scanMember(db.QueryRow(ctx, q.QueryInsertMember, groupID, userID, isAdmin))
}

func (r *MemberRepository) List(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	rows, err := r.db.Query(ctx, q.QueryListMembers, groupID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.GroupMember, 0, 16)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, mapPgError(rows.Err())
}

func (r *MemberRepository) Get(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	return scanMember(r.db.QueryRow(ctx, q.QueryGetMember, groupID, userID))
}

func (r *MemberRepository) Exists(ctx context.Context, groupID, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, q.QueryMemberExists, groupID, userID).Scan(&ok)
	return ok, mapPgError(err)
}

// Add: дубликат (group_id,user_id) отдаётся как ErrAlreadyMember.
func (r *MemberRepository) Add(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	m, err := insertMember(ctx, r.db, groupID, userID, isAdmin)
	if isAlreadyExists(err) {
		return nil, domain.ErrAlreadyMember
	}
	return m, err
}

func (r *MemberRepository) SetAdmin(ctx context.Context, groupID, userID string, isAdmin bool) (*domain.GroupMember, error) {
	return scanMember(r.db.QueryRow(ctx, q.QueryUpdateMemberAdmin, groupID, userID, isAdmin))
}

// Remove удаляет ровно одну строку; если её не было, ErrNotMember.
func (r *MemberRepository) Remove(ctx context.Context, groupID, userID string) error {
	cmd, err := r.db.Exec(ctx, q.QueryDeleteMember, groupID, userID)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotMember
	}
	return nil
}
