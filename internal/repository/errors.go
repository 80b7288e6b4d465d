package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateSection = errors.New("section is already assigned to this teacher")
	ErrNoChanges        = errors.New("no columns to update")
)

// коды ошибок PostgreSQL
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
