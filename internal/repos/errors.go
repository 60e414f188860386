package repos

import (
  "errors"
  "strings"

  "github.com/jackc/pgx/v5/pgconn"
  "gorm.io/gorm"
)

// ErrDuplicate marks an insert that lost a unique-index race. Callers that
// rely on at-most-one semantics re-read the winning row instead of failing.
var ErrDuplicate = errors.New("duplicate record")

func isUniqueViolation(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, gorm.ErrDuplicatedKey) {
    return true
  }
  var pgErr *pgconn.PgError
  if errors.As(err, &pgErr) && pgErr.Code == "23505" {
    return true
  }
  // sqlite driver surfaces constraint failures as plain strings.
  return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
