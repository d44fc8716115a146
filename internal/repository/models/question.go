package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cert-study/internal/domain"
)

// OptionMap stores question options as JSON text. Scan also accepts the legacy
// list form ["A. foo", "B. bar"] and converts it to the mapping.
type OptionMap domain.Options

// Value implements the driver.Valuer interface
func (o OptionMap) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]string(o))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (o *OptionMap) Scan(value interface{}) error {
	if value == nil {
		*o = OptionMap{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("OptionMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(raw) == 0 || string(raw) == "null" {
		*o = OptionMap{}
		return nil
	}

	var opts domain.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return fmt.Errorf("OptionMap Scan: %w", err)
	}
	*o = OptionMap(opts)
	return nil
}

// Question is the questions table row.
type Question struct {
	ID          int64          `db:"id"`
	Stem        string         `db:"stem"`
	Options     OptionMap      `db:"options"`
	Answer      string         `db:"answer"`
	Explanation sql.NullString `db:"explanation"`
	Category    string         `db:"category"`
	Subcategory string         `db:"subcategory"`
	Source      sql.NullString `db:"source"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Attempt is the attempts table row.
type Attempt struct {
	ID         int64          `db:"id"`
	UserID     string         `db:"user_id"`
	QuestionID int64          `db:"question_id"`
	Chosen     sql.NullString `db:"chosen"`
	Correct    bool           `db:"correct"`
	NoteType   string         `db:"note_type"`
	CreatedAt  time.Time      `db:"created_at"`
}
