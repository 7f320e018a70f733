package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Deactivate soft-deletes every language row sharing a content_id. Deletion
// is always pair-wide; a row left behind in one language would silently
// desynchronize the two variants. Returns ErrNotFound when no active row
// carried the id.
func Deactivate(ctx context.Context, db *sqlx.DB, table, contentID string) error {
	res, err := db.ExecContext(ctx, db.Rebind(fmt.Sprintf(
		`UPDATE %s SET is_active = ?, updated_at = ? WHERE content_id = ? AND is_active`, table,
	)), false, time.Now().UTC(), contentID)
	if err != nil {
		return ClassifyReadError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("content %q: %w", contentID, ErrNotFound)
	}
	return nil
}
