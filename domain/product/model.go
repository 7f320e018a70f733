package product

import (
	"time"

	"github.com/lumaxtec/site-backend/domain/content"
)

// Row is the storage shape of one product in one language.
type Row struct {
	ID               int64                `db:"id"`
	ContentID        string               `db:"content_id"`
	Language         string               `db:"language"`
	Name             string               `db:"name"`
	Category         string               `db:"category"`
	ShortDescription string               `db:"short_description"`
	Description      string               `db:"description"`
	Specs            content.StringMap    `db:"specs"`
	Features         content.StringList   `db:"features"`
	Applications     content.StringList   `db:"applications"`
	Downloads        content.DownloadList `db:"downloads"`
	ImageURL         string               `db:"image_url"`
	IsActive         bool                 `db:"is_active"`
	CreatedAt        time.Time            `db:"created_at"`
	UpdatedAt        time.Time            `db:"updated_at"`
}

// Product is the client shape consumed by the website and the admin editor.
type Product struct {
	ContentID        string                 `json:"contentId"`
	Language         string                 `json:"language"`
	Name             string                 `json:"name"`
	Category         string                 `json:"category"`
	ShortDescription string                 `json:"shortDescription"`
	Description      string                 `json:"description"`
	Specs            map[string]string      `json:"specs"`
	Features         []string               `json:"features"`
	Applications     []string               `json:"applications"`
	Downloads        []content.Download     `json:"downloads"`
	ImageURL         string                 `json:"imageUrl"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// Catalog is the language-partitioned response shape.
type Catalog struct {
	DE []Product `json:"de"`
	EN []Product `json:"en"`
}

// ToClient converts a stored row into the client shape. Total: missing JSON
// columns become empty collections, never null. The canonical category rule
// is applied here so every read path reports the same category for a family
// regardless of what was persisted.
func (r Row) ToClient() Product {
	p := Product{
		ContentID:        r.ContentID,
		Language:         r.Language,
		Name:             r.Name,
		Category:         content.CanonicalizeCategory(r.ContentID, content.Language(r.Language), r.Category),
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Specs:            r.Specs,
		Features:         r.Features,
		Applications:     r.Applications,
		Downloads:        r.Downloads,
		ImageURL:         r.ImageURL,
		UpdatedAt:        r.UpdatedAt,
	}
	if p.Specs == nil {
		p.Specs = map[string]string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Applications == nil {
		p.Applications = []string{}
	}
	if p.Downloads == nil {
		p.Downloads = []content.Download{}
	}
	return p
}

// ToRow builds the storage shape for an upsert. content_id and language are
// explicit; the store assigns timestamps and the active flag.
func ToRow(p Product, lang content.Language) Row {
	return Row{
		ContentID:        p.ContentID,
		Language:         string(lang),
		Name:             p.Name,
		Category:         p.Category,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Specs:            content.StringMap(p.Specs),
		Features:         content.StringList(p.Features),
		Applications:     content.StringList(p.Applications),
		Downloads:        content.DownloadList(p.Downloads),
		ImageURL:         p.ImageURL,
	}
}

// Partition groups normalized rows by language, preserving input order.
func Partition(rows []Row) Catalog {
	cat := Catalog{DE: []Product{}, EN: []Product{}}
	for _, r := range rows {
		p := r.ToClient()
		switch content.Language(r.Language) {
		case content.LanguageDE:
			cat.DE = append(cat.DE, p)
		case content.LanguageEN:
			cat.EN = append(cat.EN, p)
		}
	}
	return cat
}

// Canonicalize re-applies the category rules to a client-shaped catalog, so
// snapshot data and remote responses present identically to live rows.
func (c Catalog) Canonicalize() Catalog {
	for i, p := range c.DE {
		c.DE[i].Category = content.CanonicalizeCategory(p.ContentID, content.LanguageDE, p.Category)
	}
	for i, p := range c.EN {
		c.EN[i].Category = content.CanonicalizeCategory(p.ContentID, content.LanguageEN, p.Category)
	}
	return c
}
