package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// handleDBError is a package-level helper for wrapping database errors. Record
// not-found is passed through unwrapped so callers can branch on it.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if err == gorm.ErrRecordNotFound {
		return err
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// applyPagination applies limit/offset with sane bounds.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 100
	}
	if limit > 100 {
		limit = 100
	}
	query = query.Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
