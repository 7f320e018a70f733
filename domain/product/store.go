package product

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lumaxtec/site-backend/domain/content"
)

const table = "products"

const upsertQuery = `
	INSERT INTO products (
		content_id, language, name, category, short_description, description,
		specs, features, applications, downloads, image_url,
		is_active, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)
	ON CONFLICT (content_id, language) WHERE is_active DO UPDATE SET
		name = excluded.name,
		category = excluded.category,
		short_description = excluded.short_description,
		description = excluded.description,
		specs = excluded.specs,
		features = excluded.features,
		applications = excluded.applications,
		downloads = excluded.downloads,
		image_url = excluded.image_url,
		updated_at = excluded.updated_at`

// Store owns the products table.
type Store struct {
	db     *sqlx.DB
	linker *content.Linker
}

// NewStore creates a product store on an injected database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, linker: content.NewLinker(db, table)}
}

// FetchAll returns every active row in both languages, deterministically
// ordered by content_id then language.
func (s *Store) FetchAll(ctx context.Context) ([]Row, error) {
	rows := []Row{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, content_id, language, name, category, short_description,
		       description, specs, features, applications, downloads, image_url,
		       is_active, created_at, updated_at
		FROM products
		WHERE is_active
		ORDER BY content_id ASC, language ASC`)
	if err != nil {
		return nil, content.ClassifyReadError(err)
	}
	return rows, nil
}

// BulkUpsert persists every submitted row, keyed by (content_id, language).
// The caller sends the full payload it wishes to persist per row; rows absent
// from the payload are left untouched. Runs in one transaction so a partial
// save never leaves the two languages half-written.
func (s *Store) BulkUpsert(ctx context.Context, rows []Row) error {
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
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, stmt,
			r.ContentID, r.Language, r.Name, r.Category, r.ShortDescription,
			r.Description, r.Specs, r.Features, r.Applications, r.Downloads,
			r.ImageURL, now, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete soft-deletes every language row for a content_id.
func (s *Store) Delete(ctx context.Context, contentID string) error {
	return content.Deactivate(ctx, s.db, table, contentID)
}

// Link re-keys the target-language row to the source content_id.
func (s *Store) Link(ctx context.Context, sourceContentID, targetContentID string, targetLang content.Language) error {
	return s.linker.Relink(ctx, sourceContentID, targetContentID, targetLang)
}
