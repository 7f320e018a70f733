package faq

import (
	"sort"
	"time"

	"github.com/lumaxtec/site-backend/domain/content"
)

// Row is the storage shape of one FAQ entry in one language.
type Row struct {
	ID         int64     `db:"id"`
	ContentID  string    `db:"content_id"`
	Language   string    `db:"language"`
	Question   string    `db:"question"`
	Answer     string    `db:"answer"`
	Category   string    `db:"category"`
	OrderIndex int       `db:"order_index"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// FAQ is the client shape of one entry.
type FAQ struct {
	ContentID  string    `json:"contentId"`
	Language   string    `json:"language"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	OrderIndex int       `json:"orderIndex"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Group is one category block of the grouped response.
type Group struct {
	Category  string `json:"category"`
	Questions []FAQ  `json:"questions"`
}

// Grouped is the language-partitioned, category-grouped response shape.
type Grouped struct {
	DE []Group `json:"de"`
	EN []Group `json:"en"`
}

// ToClient converts a stored row into the client shape.
func (r Row) ToClient() FAQ {
	return FAQ{
		ContentID:  r.ContentID,
		Language:   r.Language,
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   r.Category,
		OrderIndex: r.OrderIndex,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ToRow builds the storage shape for an upsert.
func ToRow(f FAQ, lang content.Language) Row {
	return Row{
		ContentID:  f.ContentID,
		Language:   string(lang),
		Question:   f.Question,
		Answer:     f.Answer,
		Category:   f.Category,
		OrderIndex: f.OrderIndex,
	}
}

// GroupRows partitions rows by language, then groups each side by exact
// category match. Categories are sorted lexicographically and questions by
// order_index ascending; order_index ties keep storage order (row id). Rows
// are pre-sorted by id, so the output is identical for any input ordering.
func GroupRows(rows []Row) Grouped {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byLang := map[content.Language][]Row{}
	for _, r := range sorted {
		lang := content.Language(r.Language)
		byLang[lang] = append(byLang[lang], r)
	}

	return Grouped{
		DE: groupByCategory(byLang[content.LanguageDE]),
		EN: groupByCategory(byLang[content.LanguageEN]),
	}
}

func groupByCategory(rows []Row) []Group {
	byCategory := map[string][]FAQ{}
	for _, r := range rows {
		byCategory[r.Category] = append(byCategory[r.Category], r.ToClient())
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	groups := make([]Group, 0, len(categories))
	for _, category := range categories {
		questions := byCategory[category]
		sort.SliceStable(questions, func(i, j int) bool {
			return questions[i].OrderIndex < questions[j].OrderIndex
		})
		groups = append(groups, Group{Category: category, Questions: questions})
	}
	return groups
}
