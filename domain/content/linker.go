package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Linker re-keys a target-language record so it shares a content_id with a
// record in the opposite language. The three content tables share the key
// columns, so one implementation covers products, careers and FAQs.
//
// The table name comes from package-internal constants in the per-type
// stores, never from request input.
type Linker struct {
	db    *sqlx.DB
	table string
}

// NewLinker creates a linker for one content table.
func NewLinker(db *sqlx.DB, table string) *Linker {
	return &Linker{db: db, table: table}
}

// Relink rewrites the target row's content_id to sourceContentID.
//
// Preconditions, checked in order:
//  1. an active row exists under sourceContentID in some language
//  2. an active row exists under (targetContentID, targetLang)
//  3. (sourceContentID, targetLang) is not occupied by a different active row
//
// The write itself is a single conditional UPDATE; the partial unique index
// on (content_id, language) turns a lost race into ErrConflict instead of a
// duplicate key. The source row is never touched.
func (l *Linker) Relink(ctx context.Context, sourceContentID, targetContentID string, targetLang Language) error {
	var sourceExists bool
	err := l.db.GetContext(ctx, &sourceExists, l.db.Rebind(fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM %s WHERE content_id = ? AND is_active)`, l.table,
	)), sourceContentID)
	if err != nil {
		return ClassifyReadError(err)
	}
	if !sourceExists {
		return fmt.Errorf("source %q: %w", sourceContentID, ErrNotFound)
	}

	var targetExists bool
	err = l.db.GetContext(ctx, &targetExists, l.db.Rebind(fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM %s WHERE content_id = ? AND language = ? AND is_active)`, l.table,
	)), targetContentID, targetLang)
	if err != nil {
		return ClassifyReadError(err)
	}
	if !targetExists {
		return fmt.Errorf("target (%q, %s): %w", targetContentID, targetLang, ErrNotFound)
	}

	// A row already holding the destination key is only acceptable when it is
	// the target itself (linking a record to its current key is a no-op).
	if sourceContentID != targetContentID {
		var occupied bool
		err = l.db.GetContext(ctx, &occupied, l.db.Rebind(fmt.Sprintf(
			`SELECT EXISTS(SELECT 1 FROM %s WHERE content_id = ? AND language = ? AND is_active)`, l.table,
		)), sourceContentID, targetLang)
		if err != nil {
			return ClassifyReadError(err)
		}
		if occupied {
			return fmt.Errorf("(%q, %s) already occupied: %w", sourceContentID, targetLang, ErrConflict)
		}
	}

	res, err := l.db.ExecContext(ctx, l.db.Rebind(fmt.Sprintf(
		`UPDATE %s SET content_id = ?, updated_at = ? WHERE content_id = ? AND language = ? AND is_active`, l.table,
	)), sourceContentID, time.Now().UTC(), targetContentID, targetLang)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("(%q, %s) already occupied: %w", sourceContentID, targetLang, ErrConflict)
		}
		return ClassifyReadError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Target moved between precondition check and write.
		return fmt.Errorf("target (%q, %s): %w", targetContentID, targetLang, ErrNotFound)
	}
	return nil
}
