package career

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lumaxtec/site-backend/domain/content"
)

const table = "careers"

const upsertQuery = `
	INSERT INTO careers (
		content_id, language, title, location, employment_type, department,
		description, requirements, is_published, published_at,
		is_active, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)
	ON CONFLICT (content_id, language) WHERE is_active DO UPDATE SET
		title = excluded.title,
		location = excluded.location,
		employment_type = excluded.employment_type,
		department = excluded.department,
		description = excluded.description,
		requirements = excluded.requirements,
		is_published = excluded.is_published,
		published_at = excluded.published_at,
		updated_at = excluded.updated_at`

// Store owns the careers table.
type Store struct {
	db     *sqlx.DB
	linker *content.Linker
}

// NewStore creates a career store on an injected database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, linker: content.NewLinker(db, table)}
}

// FetchAll returns active rows ordered by published_at descending (nulls
// last), then content_id, then language — a fixed tie-break chain so
// repeated fetches of unchanged data return the same order. onlyPublished
// restricts the result to the public board.
func (s *Store) FetchAll(ctx context.Context, onlyPublished bool) ([]Row, error) {
	query := `
		SELECT id, content_id, language, title, location, employment_type,
		       department, description, requirements, is_published, published_at,
		       is_active, created_at, updated_at
		FROM careers
		WHERE is_active`
	if onlyPublished {
		query += ` AND is_published`
	}
	query += `
		ORDER BY (published_at IS NULL) ASC, published_at DESC, content_id ASC, language ASC`

	rows := []Row{}
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, content.ClassifyReadError(err)
	}
	return rows, nil
}

// BulkUpsert persists every submitted row. published_at is derived per row:
// set to now on the first unpublished-to-published transition, preserved on
// every later save, cleared only when clearPublishedAt was set.
func (s *Store) BulkUpsert(ctx context.Context, rows []Row, clearPublishedAt map[string]bool) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return content.ClassifyReadError(err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	stmt := tx.Rebind(upsertQuery)
	existingStmt := tx.Rebind(`
		SELECT is_published, published_at FROM careers
		WHERE content_id = ? AND language = ? AND is_active`)

	for _, r := range rows {
		var existing struct {
			IsPublished bool         `db:"is_published"`
			PublishedAt sql.NullTime `db:"published_at"`
		}
		err := tx.GetContext(ctx, &existing, existingStmt, r.ContentID, r.Language)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		publishedAt := existing.PublishedAt
		switch {
		case r.IsPublished && !existing.IsPublished:
			publishedAt = sql.NullTime{Time: now, Valid: true}
		case clearPublishedAt[r.ContentID+"/"+r.Language]:
			publishedAt = sql.NullTime{}
		}

		if _, err := tx.ExecContext(ctx, stmt,
			r.ContentID, r.Language, r.Title, r.Location, r.EmploymentType,
			r.Department, r.Description, r.Requirements, r.IsPublished,
			publishedAt, now, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete soft-deletes a posting in both languages.
func (s *Store) Delete(ctx context.Context, contentID string) error {
	return content.Deactivate(ctx, s.db, table, contentID)
}

// Link re-keys the target-language row to the source content_id.
func (s *Store) Link(ctx context.Context, sourceContentID, targetContentID string, targetLang content.Language) error {
	return s.linker.Relink(ctx, sourceContentID, targetContentID, targetLang)
}
