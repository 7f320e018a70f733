package career

import (
	"database/sql"
	"time"

	"github.com/lumaxtec/site-backend/domain/content"
)

// Row is the storage shape of one job posting in one language.
type Row struct {
	ID             int64              `db:"id"`
	ContentID      string             `db:"content_id"`
	Language       string             `db:"language"`
	Title          string             `db:"title"`
	Location       string             `db:"location"`
	EmploymentType string             `db:"employment_type"`
	Department     string             `db:"department"`
	Description    string             `db:"description"`
	Requirements   content.StringList `db:"requirements"`
	IsPublished    bool               `db:"is_published"`
	PublishedAt    sql.NullTime       `db:"published_at"`
	IsActive       bool               `db:"is_active"`
	CreatedAt      time.Time          `db:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at"`
}

// Career is the client shape of a job posting.
//
// ClearPublishedAt is input-only: published_at is server-derived and is never
// auto-cleared, so unpublishing keeps the original date unless the editor
// explicitly asks for a reset.
type Career struct {
	ContentID        string     `json:"contentId"`
	Language         string     `json:"language"`
	Title            string     `json:"title"`
	Location         string     `json:"location"`
	EmploymentType   string     `json:"employmentType"`
	Department       string     `json:"department"`
	Description      string     `json:"description"`
	Requirements     []string   `json:"requirements"`
	IsPublished      bool       `json:"isPublished"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	ClearPublishedAt bool       `json:"clearPublishedAt,omitempty"`
}

// Board is the language-partitioned response shape.
type Board struct {
	DE []Career `json:"de"`
	EN []Career `json:"en"`
}

// ToClient converts a stored row into the client shape.
func (r Row) ToClient() Career {
	c := Career{
		ContentID:      r.ContentID,
		Language:       r.Language,
		Title:          r.Title,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		Department:     r.Department,
		Description:    r.Description,
		Requirements:   r.Requirements,
		IsPublished:    r.IsPublished,
		UpdatedAt:      r.UpdatedAt,
	}
	if c.Requirements == nil {
		c.Requirements = []string{}
	}
	if r.PublishedAt.Valid {
		t := r.PublishedAt.Time
		c.PublishedAt = &t
	}
	return c
}

// ToRow builds the storage shape for an upsert. published_at is derived by
// the store, not taken from the input.
func ToRow(c Career, lang content.Language) Row {
	return Row{
		ContentID:      c.ContentID,
		Language:       string(lang),
		Title:          c.Title,
		Location:       c.Location,
		EmploymentType: c.EmploymentType,
		Department:     c.Department,
		Description:    c.Description,
		Requirements:   content.StringList(c.Requirements),
		IsPublished:    c.IsPublished,
	}
}

// Partition groups normalized rows by language, preserving input order.
func Partition(rows []Row) Board {
	board := Board{DE: []Career{}, EN: []Career{}}
	for _, r := range rows {
		c := r.ToClient()
		switch content.Language(r.Language) {
		case content.LanguageDE:
			board.DE = append(board.DE, c)
		case content.LanguageEN:
			board.EN = append(board.EN, c)
		}
	}
	return board
}
