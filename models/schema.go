package models

import (
	"fmt"
	"time"
)

// FieldKind describes how a column value is produced and validated
type FieldKind int

const (
	// KindText is a client-supplied string
	KindText FieldKind = iota
	// KindBool is a client-supplied boolean stored as "true"/"false"
	KindBool
	// KindDate is a client-supplied YYYY-MM-DD date
	KindDate
	// KindID is the server-generated record identifier
	KindID
	// KindTimestamp is the server-assigned creation time
	KindTimestamp
	// KindCounter is a server-owned integer that starts at zero
	KindCounter
	// KindEmail is a client-supplied email address
	KindEmail
)

// TimestampLayout is the ISO 8601 layout used for stored and returned timestamps
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the layout of KindDate fields
const DateLayout = "2006-01-02"

// FieldSpec describes one column of a form table
type FieldSpec struct {
	Key      string
	Header   string
	Kind     FieldKind
	Required bool
	MaxLen   int
}

// ServerAssigned reports whether the value never comes from the client payload
func (f FieldSpec) ServerAssigned() bool {
	return f.Kind == KindID || f.Kind == KindTimestamp || f.Kind == KindCounter
}

// Schema describes the record layout of one form and the table it is stored in
type Schema struct {
	Form     string
	Table    string
	IDPrefix string
	Columns  []FieldSpec
	// Validation lists column keys in the order they are checked. Columns
	// not listed follow in column order.
	Validation []string
}

// validationOrder returns column indexes in the order Validate checks them
func (s Schema) validationOrder() []int {
	order := make([]int, 0, len(s.Columns))
	seen := make(map[int]bool, len(s.Columns))
	for _, key := range s.Validation {
		for i, col := range s.Columns {
			if col.Key == key && !seen[i] {
				order = append(order, i)
				seen[i] = true
			}
		}
	}
	for i := range s.Columns {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order
}

// Header returns the header row for the schema's table
func (s Schema) Header() []string {
	header := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		header[i] = col.Header
	}
	return header
}

// HasID reports whether records of this schema carry a server id
func (s Schema) HasID() bool {
	for _, col := range s.Columns {
		if col.Kind == KindID {
			return true
		}
	}
	return false
}

// Column returns the column spec with the given key
func (s Schema) Column(key string) (FieldSpec, bool) {
	for _, col := range s.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return FieldSpec{}, false
}

// TimestampIndex returns the position of the timestamp column, or -1
func (s Schema) TimestampIndex() int {
	for i, col := range s.Columns {
		if col.Kind == KindTimestamp {
			return i
		}
	}
	return -1
}

// Row renders a record as a table row in column order
func (s Schema) Row(rec Record) []string {
	row := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		switch col.Kind {
		case KindID:
			row[i] = rec.ID
		case KindTimestamp:
			row[i] = FormatTimestamp(rec.Timestamp)
		default:
			row[i] = rec.Fields.Get(col.Key)
		}
	}
	return row
}

// Parse reads a table row back into a record. Missing trailing cells are empty.
func (s Schema) Parse(row []string) (Record, error) {
	var rec Record
	for i, col := range s.Columns {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}

		switch col.Kind {
		case KindID:
			rec.ID = cell
		case KindTimestamp:
			if cell == "" {
				continue
			}
			ts, err := ParseTimestamp(cell)
			if err != nil {
				return rec, fmt.Errorf("invalid %s %q: %w", col.Header, cell, err)
			}
			rec.Timestamp = ts
		default:
			rec.Fields = append(rec.Fields, Field{Key: col.Key, Value: cell})
		}
	}
	return rec, nil
}

// FormatTimestamp formats t the way timestamps are stored
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp, accepting any RFC 3339 variant
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
