package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier: общий интерфейс *pgxpool.Pool и pgx.Tx, чтобы репозитории работали и внутри транзакции.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &dbError{kind: domain.ErrAlreadyExists, cause: pgErr}
	case pgerrcode.ForeignKeyViolation:
		return &dbError{kind: domain.ErrInvalidReference, cause: pgErr}
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation,
		pgerrcode.InvalidTextRepresentation, pgerrcode.InvalidDatetimeFormat,
		pgerrcode.NumericValueOutOfRange, pgerrcode.StringDataRightTruncationDataException:
		return &dbError{kind: domain.ErrInvalidInput, cause: pgErr}
	}
	return err
}

// dbError: в Error() только текст доменной ошибки, PgError доступен через errors.As.
type dbError struct {
	kind  error
	cause *pgconn.PgError
}

func (e *dbError) Error() string { return e.kind.Error() }

func (e *dbError) Unwrap() []error { return []error{e.kind, e.cause} }

// orNil превращает пустую строку в NULL.
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует метасимволы LIKE, чтобы поиск шёл по буквальной подстроке.
func escapeLike(s string) string { return likeEscaper.Replace(s) }

func isAlreadyExists(err error) bool {
	return err != nil && errors.Is(err, domain.ErrAlreadyExists)
}
