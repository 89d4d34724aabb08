package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QA is one question/answer pair inside a reflection.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QAList stores question/answer pairs as a JSON text column.
type QAList []QA

// Value implements driver.Valuer.
func (l QAList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *QAList) Scan(value any) error {
	return scanJSON(value, l)
}

// StringList stores a list of strings as a JSON text column
// (e.g. AI-generated reflection questions).
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

// StatsBlob is the opaque stats snapshot attached to a reflection.
// The importer never inspects it; it is carried through as-is.
type StatsBlob map[string]any

// Value implements driver.Valuer.
func (b StatsBlob) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner.
func (b *StatsBlob) Scan(value any) error {
	return scanJSON(value, b)
}

func scanJSON(value, dest any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T for JSON scan", value)
	}
}
