package errorsUtils

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeUniqueViolation  = "23505"
	CodeNotNullViolation = "23502"
	CodeCheckViolation   = "23514"
)

// PgCode returns the SQLSTATE of a postgres error in the chain, or "".
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsConstraintViolation(err error) bool {
	switch PgCode(err) {
	case CodeUniqueViolation, CodeNotNullViolation, CodeCheckViolation:
		return true
	}
	return false
}

func WrapPathErr(err error) error {
	pc, _, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return fmt.Errorf("[%s:%d] %w", fn, line, err)
}
