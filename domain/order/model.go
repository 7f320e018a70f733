package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Order statuses.
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Item is one requested product position. Quantities are inquiry-level; the
// site has no checkout, orders are handled by the sales team.
type Item struct {
	ContentID string `json:"contentId"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// ItemList is a JSON array column of order items.
type ItemList []Item

// Value implements driver.Valuer.
func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		l = ItemList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ItemList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into ItemList", src)
}

// Order is a product inquiry submitted through the website.
type Order struct {
	ID            int64     `db:"id" json:"id"`
	OrderNumber   string    `db:"order_number" json:"orderNumber"`
	CustomerName  string    `db:"customer_name" json:"customerName"`
	CustomerEmail string    `db:"customer_email" json:"customerEmail"`
	Company       string    `db:"company" json:"company"`
	Phone         string    `db:"phone" json:"phone"`
	Language      string    `db:"language" json:"language"`
	Items         ItemList  `db:"items" json:"items"`
	Message       string    `db:"message" json:"message"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateRequest is the public order intake payload.
type CreateRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Company       string `json:"company"`
	Phone         string `json:"phone"`
	Language      string `json:"language"`
	Items         []Item `json:"items"`
	Message       string `json:"message"`
}

// UpdateStatusRequest is the staff payload for moving an order along.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
