package career

import (
	"context"
	"testing"
	"time"

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
	CREATE TABLE careers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id TEXT NOT NULL,
		language TEXT NOT NULL,
		title TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		employment_type TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT '[]',
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		published_at TIMESTAMP,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE UNIQUE INDEX careers_content_language_active
		ON careers (content_id, language) WHERE is_active;`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewStore(db)
}

func fetchOne(t *testing.T, store *Store, contentID, language string) Row {
	t.Helper()
	rows, err := store.FetchAll(context.Background(), false)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	for _, r := range rows {
		if r.ContentID == contentID && r.Language == language {
			return r
		}
	}
	t.Fatalf("row (%s, %s) not found", contentID, language)
	return Row{}
}

func TestBulkUpsertSetsPublishedAtOnTransition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	draft := Row{ContentID: "optics-engineer", Language: "de", Title: "Optikingenieur (m/w/d)"}
	if err := store.BulkUpsert(ctx, []Row{draft}, nil); err != nil {
		t.Fatalf("draft save: %v", err)
	}
	if got := fetchOne(t, store, "optics-engineer", "de"); got.PublishedAt.Valid {
		t.Fatal("published_at set on an unpublished draft")
	}

	published := draft
	published.IsPublished = true
	if err := store.BulkUpsert(ctx, []Row{published}, nil); err != nil {
		t.Fatalf("publish save: %v", err)
	}
	got := fetchOne(t, store, "optics-engineer", "de")
	if !got.PublishedAt.Valid {
		t.Fatal("published_at not set on the publish transition")
	}

	firstPublishedAt := got.PublishedAt.Time

	// A later save of an already-published posting must keep the original
	// publication time.
	time.Sleep(10 * time.Millisecond)
	published.Title = "Senior Optikingenieur (m/w/d)"
	if err := store.BulkUpsert(ctx, []Row{published}, nil); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	got = fetchOne(t, store, "optics-engineer", "de")
	if !got.PublishedAt.Valid || !got.PublishedAt.Time.Equal(firstPublishedAt) {
		t.Errorf("published_at changed on re-save: %v, want %v", got.PublishedAt.Time, firstPublishedAt)
	}
	if got.Title != "Senior Optikingenieur (m/w/d)" {
		t.Errorf("title not updated: %q", got.Title)
	}
}

func TestBulkUpsertClearPublishedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	row := Row{ContentID: "optics-engineer", Language: "de", Title: "Optikingenieur (m/w/d)", IsPublished: true}
	if err := store.BulkUpsert(ctx, []Row{row}, nil); err != nil {
		t.Fatalf("publish save: %v", err)
	}

	row.IsPublished = false
	clear := map[string]bool{"optics-engineer/de": true}
	if err := store.BulkUpsert(ctx, []Row{row}, clear); err != nil {
		t.Fatalf("clear save: %v", err)
	}

	got := fetchOne(t, store, "optics-engineer", "de")
	if got.PublishedAt.Valid {
		t.Errorf("published_at = %v, want cleared", got.PublishedAt.Time)
	}
}

func TestBulkUpsertUnpublishKeepsPublishedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	row := Row{ContentID: "optics-engineer", Language: "de", Title: "Optikingenieur (m/w/d)", IsPublished: true}
	if err := store.BulkUpsert(ctx, []Row{row}, nil); err != nil {
		t.Fatalf("publish save: %v", err)
	}

	// Unpublishing without the explicit clear flag keeps the timestamp, so a
	// re-publish restores the original ordering position.
	row.IsPublished = false
	if err := store.BulkUpsert(ctx, []Row{row}, nil); err != nil {
		t.Fatalf("unpublish save: %v", err)
	}

	got := fetchOne(t, store, "optics-engineer", "de")
	if !got.PublishedAt.Valid {
		t.Error("published_at cleared without the clear flag")
	}
}

func TestFetchAllOrderingAndPublishedFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	save := func(r Row) {
		t.Helper()
		if err := store.BulkUpsert(ctx, []Row{r}, nil); err != nil {
			t.Fatalf("save %s: %v", r.ContentID, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	save(Row{ContentID: "optics-engineer", Language: "de", Title: "Optikingenieur", IsPublished: true})
	save(Row{ContentID: "sales-manager", Language: "de", Title: "Vertrieb", IsPublished: true})
	save(Row{ContentID: "hr-assistant", Language: "de", Title: "HR Assistenz"})

	all, err := store.FetchAll(ctx, false)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("row count = %d, want 3", len(all))
	}
	// Newest publication first, unpublished drafts last.
	wantOrder := []string{"sales-manager", "optics-engineer", "hr-assistant"}
	for i, want := range wantOrder {
		if all[i].ContentID != want {
			t.Errorf("position %d = %q, want %q", i, all[i].ContentID, want)
		}
	}

	published, err := store.FetchAll(ctx, true)
	if err != nil {
		t.Fatalf("FetchAll published: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("published count = %d, want 2", len(published))
	}
	for _, r := range published {
		if !r.IsPublished {
			t.Errorf("unpublished row %q in the public board", r.ContentID)
		}
	}
}

func TestCareerRequirementsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	row := Row{
		ContentID:    "optics-engineer",
		Language:     "de",
		Title:        "Optikingenieur (m/w/d)",
		Requirements: content.StringList{"Studium der Physik", "Erfahrung mit Zemax"},
	}
	if err := store.BulkUpsert(ctx, []Row{row}, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := fetchOne(t, store, "optics-engineer", "de")
	if len(got.Requirements) != 2 || got.Requirements[1] != "Erfahrung mit Zemax" {
		t.Errorf("Requirements = %v", got.Requirements)
	}
}
