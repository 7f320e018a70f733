package product

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lumaxtec/site-backend/domain/content"
	_ "github.com/mattn/go-sqlite3"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id TEXT NOT NULL,
		language TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		short_description TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		specs TEXT NOT NULL DEFAULT '{}',
		features TEXT NOT NULL DEFAULT '[]',
		applications TEXT NOT NULL DEFAULT '[]',
		downloads TEXT NOT NULL DEFAULT '[]',
		image_url TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE UNIQUE INDEX products_content_language_active
		ON products (content_id, language) WHERE is_active;`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewStore(db)
}

func TestBulkUpsertInsertsAndUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []Row{
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse", Category: "Laser"}, content.LanguageDE),
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse", Category: "Laser"}, content.LanguageEN),
	}
	if err := store.BulkUpsert(ctx, first); err != nil {
		t.Fatalf("first BulkUpsert: %v", err)
	}

	// Saving again with changed fields must update in place, not duplicate.
	second := []Row{
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse Pro", Category: "Laser"}, content.LanguageDE),
	}
	if err := store.BulkUpsert(ctx, second); err != nil {
		t.Fatalf("second BulkUpsert: %v", err)
	}

	rows, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	// FetchAll orders by content_id then language, so de comes first.
	if rows[0].Name != "MVpulse Pro" {
		t.Errorf("de name = %q, want the updated value", rows[0].Name)
	}
	if rows[1].Name != "MVpulse" {
		t.Errorf("en name = %q, the en row must be untouched", rows[1].Name)
	}
}

func TestBulkUpsertLeavesAbsentRowsActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []Row{
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse"}, content.LanguageDE),
		ToRow(Product{ContentID: "linemark-basic", Name: "LineMark"}, content.LanguageDE),
	}
	if err := store.BulkUpsert(ctx, seed); err != nil {
		t.Fatalf("seed BulkUpsert: %v", err)
	}

	// A save containing only one record must not deactivate the other.
	update := []Row{
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse v2"}, content.LanguageDE),
	}
	if err := store.BulkUpsert(ctx, update); err != nil {
		t.Fatalf("update BulkUpsert: %v", err)
	}

	rows, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
}

func TestBulkUpsertPersistsJSONColumns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := Product{
		ContentID:    "mvpulse",
		Name:         "MVpulse",
		Specs:        map[string]string{"Wellenlänge": "660 nm"},
		Features:     []string{"IP67"},
		Applications: []string{"3D-Triangulation"},
		Downloads:    []content.Download{{Label: "Datenblatt", URL: "https://example.com/d.pdf"}},
	}
	if err := store.BulkUpsert(ctx, []Row{ToRow(p, content.LanguageDE)}); err != nil {
		t.Fatalf("BulkUpsert: %v", err)
	}

	rows, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}
	got := rows[0]
	if got.Specs["Wellenlänge"] != "660 nm" {
		t.Errorf("Specs = %v", got.Specs)
	}
	if len(got.Features) != 1 || got.Features[0] != "IP67" {
		t.Errorf("Features = %v", got.Features)
	}
	if len(got.Downloads) != 1 || got.Downloads[0].URL != "https://example.com/d.pdf" {
		t.Errorf("Downloads = %v", got.Downloads)
	}
}

func TestDeleteDeactivatesBothLanguages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []Row{
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse"}, content.LanguageDE),
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse"}, content.LanguageEN),
		ToRow(Product{ContentID: "linemark-basic", Name: "LineMark"}, content.LanguageDE),
	}
	if err := store.BulkUpsert(ctx, seed); err != nil {
		t.Fatalf("seed BulkUpsert: %v", err)
	}

	if err := store.Delete(ctx, "mvpulse"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rows, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 1 || rows[0].ContentID != "linemark-basic" {
		t.Fatalf("remaining rows = %+v, want only linemark-basic", rows)
	}

	if err := store.Delete(ctx, "mvpulse"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteFreesKeyForReuse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.BulkUpsert(ctx, []Row{
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse"}, content.LanguageDE),
	}); err != nil {
		t.Fatalf("seed BulkUpsert: %v", err)
	}
	if err := store.Delete(ctx, "mvpulse"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The partial unique index only covers active rows, so the key is free.
	if err := store.BulkUpsert(ctx, []Row{
		ToRow(Product{ContentID: "mvpulse", Name: "MVpulse Neu"}, content.LanguageDE),
	}); err != nil {
		t.Fatalf("re-insert after delete: %v", err)
	}

	rows, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "MVpulse Neu" {
		t.Fatalf("rows = %+v, want the re-inserted record", rows)
	}
}

func TestStoreLink(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []Row{
		ToRow(Product{ContentID: "machine-vision-new", Name: "Machine Vision Neu"}, content.LanguageDE),
		ToRow(Product{ContentID: "old-mv-en", Name: "Machine Vision"}, content.LanguageEN),
	}
	if err := store.BulkUpsert(ctx, seed); err != nil {
		t.Fatalf("seed BulkUpsert: %v", err)
	}

	if err := store.Link(ctx, "machine-vision-new", "old-mv-en", content.LanguageEN); err != nil {
		t.Fatalf("Link: %v", err)
	}

	rows, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.ContentID != "machine-vision-new" {
			t.Errorf("row (%s, %s) not under the shared key", r.ContentID, r.Language)
		}
	}
}
