package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories care about.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

var (
	ErrForeignKey = errors.New("referenced by dependent rows")
	ErrUnique     = errors.New("duplicate value")
	ErrCheck      = errors.New("value rejected by check constraint")
)

// TranslateError tags driver errors with a sentinel so callers can tell
// business-rule failures from transport failures. The original error stays
// in the chain.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeForeignKeyViolation:
		return errors.Join(ErrForeignKey, err)
	case codeUniqueViolation:
		return errors.Join(ErrUnique, err)
	case codeCheckViolation:
		return errors.Join(ErrCheck, err)
	}
	return err
}
