package mergesort

import (
	"encoding/json"
	"time"

	"github.com/lehigh-university-libraries/phototools/internal/models"
)

// DateKey is the field records are sorted on
const DateKey = "tdate"

// FieldState distinguishes a missing date from a malformed one
type FieldState int

const (
	FieldAbsent FieldState = iota
	FieldMalformed
	FieldValid
)

func (s FieldState) String() string {
	switch s {
	case FieldValid:
		return "valid"
	case FieldMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// DateField is the result of reading the date field of one record
type DateField struct {
	State FieldState
	Raw   string
	Date  time.Time
}

// DateOf reads the date field of a JSON record. Values that are not objects
// have no fields and report FieldAbsent.
func DateOf(record json.RawMessage) DateField {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record, &fields); err != nil {
		return DateField{State: FieldAbsent}
	}

	value, ok := fields[DateKey]
	if !ok {
		return DateField{State: FieldAbsent}
	}

	var raw string
	if err := json.Unmarshal(value, &raw); err != nil {
		return DateField{State: FieldMalformed, Raw: string(value)}
	}

	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return DateField{State: FieldMalformed, Raw: raw}
	}
	return DateField{State: FieldValid, Raw: raw, Date: date}
}
