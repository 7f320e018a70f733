package content

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON column wrappers shared by the per-type row structs. Stored as JSONB on
// Postgres and TEXT on the sqlite test database.

// StringList is a JSON array of strings.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// StringMap is a JSON object of string keys and values, used for the
// structured spec tables on product records.
type StringMap map[string]string

// Value implements driver.Valuer.
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		m = StringMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *StringMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// Download references a downloadable asset (datasheet, manual). URLs are
// opaque strings pointing at object storage.
type Download struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// DownloadList is a JSON array of downloads.
type DownloadList []Download

// Value implements driver.Valuer.
func (l DownloadList) Value() (driver.Value, error) {
	if l == nil {
		l = DownloadList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *DownloadList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	}
	return fmt.Errorf("cannot scan %T into JSON column", src)
}
