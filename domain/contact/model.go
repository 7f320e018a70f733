package contact

import (
	"database/sql"
	"time"
)

// Message is a contact form submission.
type Message struct {
	ID        int64        `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Email     string       `db:"email" json:"email"`
	Company   string       `db:"company" json:"company"`
	Subject   string       `db:"subject" json:"subject"`
	Body      string       `db:"body" json:"body"`
	Language  string       `db:"language" json:"language"`
	Processed bool         `db:"processed" json:"processed"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	HandledAt sql.NullTime `db:"handled_at" json:"-"`
}

// SubmitRequest is the public contact form payload.
type SubmitRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Language string `json:"language"`
}
