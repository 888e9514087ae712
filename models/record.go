package models

import (
	"time"
)

// Field is one named value of a record
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Fields is the ordered field list of a record
type Fields []Field

// Get returns the value stored under key, or an empty string
func (f Fields) Get(key string) string {
	for _, field := range f {
		if field.Key == key {
			return field.Value
		}
	}
	return ""
}

// Bool returns the value stored under key interpreted as a boolean
func (f Fields) Bool(key string) bool {
	return f.Get(key) == "true"
}

// Map returns the fields as a plain map
func (f Fields) Map() map[string]string {
	m := make(map[string]string, len(f))
	for _, field := range f {
		m[field.Key] = field.Value
	}
	return m
}

// Record is one logical row of a form table
type Record struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Fields    Fields    `json:"fields"`
}

// Comment is a magazine comment as returned to clients
type Comment struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Content     string `json:"content"`
	Likes       int    `json:"likes"`
	IsAnonymous bool   `json:"isAnonymous"`
	Timestamp   string `json:"timestamp"`
}

// LogEntry is one row of the sibling log table
type LogEntry struct {
	Timestamp   time.Time
	EventKind   string
	Target      string
	ErrorDetail string
	Context     string
	Extra       string
}

// LogTable is the name of the shared log table
const LogTable = "Log"

// LogHeader is the header row of the log table
var LogHeader = []string{"Timestamp", "EventKind", "Target", "ErrorDetail", "Context", "Extra"}

// Row renders the entry as a log table row
func (e LogEntry) Row() []string {
	return []string{
		FormatTimestamp(e.Timestamp),
		e.EventKind,
		e.Target,
		e.ErrorDetail,
		e.Context,
		e.Extra,
	}
}

// Upload is a file attached to a form submission, carried as base64
type Upload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// ParseLogEntry reads a log table row. Missing cells are empty and an
// unparseable timestamp is left zero.
func ParseLogEntry(row []string) LogEntry {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	entry := LogEntry{
		EventKind:   cell(1),
		Target:      cell(2),
		ErrorDetail: cell(3),
		Context:     cell(4),
		Extra:       cell(5),
	}
	if ts, err := ParseTimestamp(cell(0)); err == nil {
		entry.Timestamp = ts
	}
	return entry
}
