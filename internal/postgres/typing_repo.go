package postgres

import (
	"context"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TypingRepository struct {
	db *pgxpool.Pool
}

func NewTypingRepository(db *pgxpool.Pool) *TypingRepository {
	return &TypingRepository{db: db}
}

func scanTyping(row pgx.Row) (*domain.TypingIndicator, error) {
	var t domain.TypingIndicator
	if err := row.Scan(&t.ID, &t.GroupID, &t.UserID, &t.LastTyping); err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

// Upsert держит одну строку на (group, user) и обновляет last_typing.
func (r *TypingRepository) Upsert(ctx context.Context, groupID, userID string) (*domain.TypingIndicator, error) {
	return scanTyping(r.db.QueryRow(ctx, q.QueryUpsertTyping, groupID, userID))
}

func (r *TypingRepository) ListActive(ctx context.Context, groupID string, within time.Duration) ([]domain.TypingIndicator, error) {
	rows, err := r.db.Query(ctx, q.QueryListActiveTyping, groupID, within.Milliseconds())
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.TypingIndicator, 0, 4)
	for rows.Next() {
		t, err := scanTyping(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, mapPgError(rows.Err())
}

// Clear идемпотентен: отсутствие строки не ошибка.
func (r *TypingRepository) Clear(ctx context.Context, groupID, userID string) error {
	_, err := r.db.Exec(ctx, q.QueryDeleteTyping, groupID, userID)
	return mapPgError(err)
}

func (r *TypingRepository) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cmd, err := r.db.Exec(ctx, q.QueryDeleteStaleTyping, olderThan.Milliseconds())
	if err != nil {
		return 0, mapPgError(err)
	}
	return cmd.RowsAffected(), nil
}
