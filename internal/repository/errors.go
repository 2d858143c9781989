package repository

import (
	"errors"

	"github.com/lib/pq"
)

var ErrDuplicate = errors.New("duplicate key")

// uniqueViolation maps Postgres unique_violation (23505) to ErrDuplicate.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}
