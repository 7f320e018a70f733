package content

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
)

// Failure taxonomy for the consistency layer. Handlers translate these into
// HTTP responses; the product read path additionally treats
// ErrUpstreamUnavailable as the trigger for the fallback snapshot.
var (
	ErrNotFound            = errors.New("content not found")
	ErrConflict            = errors.New("content key conflict")
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamUnavailable = errors.New("record store unavailable")
)

// IsUniqueViolation reports whether err is a unique-constraint violation from
// the underlying driver. Postgres reports SQLSTATE 23505; the sqlite driver
// used in tests only exposes the message text.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// ClassifyReadError wraps store-level read failures. Row absence is not an
// upstream failure; everything that points at the store being unreachable is.
func ClassifyReadError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUnreachable(err) {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return err
}

func isUnreachable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "database is closed")
}
