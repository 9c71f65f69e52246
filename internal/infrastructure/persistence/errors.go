package persistence

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/clinova/billing-service/internal/domain/shared"
	"gorm.io/gorm"
)

// mapError translates gorm and driver errors into domain errors. Connection
// level failures surface as shared.ErrUnavailable so the HTTP layer answers
// 503 instead of a generic 500.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case isUnavailable(err):
		return shared.ErrUnavailable
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, gorm.ErrInvalidDB) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// database/sql reports a closed pool without a sentinel error
	return strings.Contains(err.Error(), "database is closed")
}
