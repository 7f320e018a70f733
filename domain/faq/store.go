package faq

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lumaxtec/site-backend/domain/content"
)

const table = "faqs"

const upsertQuery = `
	INSERT INTO faqs (
		content_id, language, question, answer, category, order_index,
		is_active, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, TRUE, ?, ?)
	ON CONFLICT (content_id, language) WHERE is_active DO UPDATE SET
		question = excluded.question,
		answer = excluded.answer,
		category = excluded.category,
		order_index = excluded.order_index,
		updated_at = excluded.updated_at`

// Store owns the faqs table.
type Store struct {
	db     *sqlx.DB
	linker *content.Linker
}

// NewStore creates an FAQ store on an injected database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, linker: content.NewLinker(db, table)}
}

// FetchAll returns every active row in storage order.
func (s *Store) FetchAll(ctx context.Context) ([]Row, error) {
	rows := []Row{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, content_id, language, question, answer, category, order_index,
		       is_active, created_at, updated_at
		FROM faqs
		WHERE is_active
		ORDER BY id ASC`)
	if err != nil {
		return nil, content.ClassifyReadError(err)
	}
	return rows, nil
}

// BulkUpsert persists every submitted row keyed by (content_id, language).
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
			r.ContentID, r.Language, r.Question, r.Answer, r.Category,
			r.OrderIndex, now, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete soft-deletes an entry in both languages.
func (s *Store) Delete(ctx context.Context, contentID string) error {
	return content.Deactivate(ctx, s.db, table, contentID)
}

// Link re-keys the target-language row to the source content_id.
func (s *Store) Link(ctx context.Context, sourceContentID, targetContentID string, targetLang content.Language) error {
	return s.linker.Relink(ctx, sourceContentID, targetContentID, targetLang)
}
