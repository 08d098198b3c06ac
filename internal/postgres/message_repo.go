package postgres

import (
	"context"
	"fmt"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func messageDest(m *domain.ChatMessage) []any {
	return []any{&m.ID, &m.GroupID, &m.UserID, &m.Content, &m.MessageType,
		&m.FileURL, &m.FileName, &m.ReplyTo, &m.CreatedAt, &m.UpdatedAt}
}

func scanMessage(row pgx.Row) (*domain.ChatMessage, error) {
	var m domain.ChatMessage
	if err := row.Scan(messageDest(&m)...); err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}

func (r *MessageRepository) Save(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	return scanMessage(r.db.QueryRow(ctx, q.QueryInsertMessage,
		m.GroupID, m.UserID, m.Content, orNil(m.MessageType), m.FileURL, m.FileName, m.ReplyTo))
}

func (r *MessageRepository) UpdateContent(ctx context.Context, id, content string) (*domain.ChatMessage, error) {
	return scanMessage(r.db.QueryRow(ctx, q.QueryUpdateMessageContent, id, content))
}

// History отдаёт сообщения группы от новых к старым с автором и курсором на следующую страницу.
func (r *MessageRepository) History(ctx context.Context, groupID, before string, limit int) ([]domain.ChatMessage, string, error) {
	limit = clampLimit(limit, 50, 100)

	cur, err := DecodeCursor(before)
	if err != nil {
		return nil, "", err
	}
	createdAt, id := cur.args()

	// лишняя строка показывает, есть ли следующая страница
	rows, err := r.db.Query(ctx, q.QueryListMessages, groupID, createdAt, id, limit+1)
	if err != nil {
		return nil, "", mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.ChatMessage, 0, limit+1)
	for rows.Next() {
		var (
			m          domain.ChatMessage
			hasProfile bool
			author     domain.MessageAuthor
		)
		dest := append(messageDest(&m), &hasProfile, &author.FullName, &author.AvatarURL)
		if err := rows.Scan(dest...); err != nil {
			return nil, "", mapPgError(err)
		}
		if hasProfile {
			m.Profile = &author
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", mapPgError(err)
	}

	return messagePage(out, limit)
}

// messagePage обрезает выборку из limit+1 строк; курсор только если строк было больше limit.
func messagePage(rows []domain.ChatMessage, limit int) ([]domain.ChatMessage, string, error) {
	if len(rows) <= limit {
		return rows, "", nil
	}
	page := rows[:limit]
	last := page[len(page)-1]
	next, err := EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	if err != nil {
		return nil, "", fmt.Errorf("next cursor: %w", err)
	}
	return page, next, nil
}
