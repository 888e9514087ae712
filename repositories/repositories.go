package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Tables   TableRepository
	EventLog EventLogRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	tables := NewTableRepository(db)
	return &Repositories{
		Tables:   tables,
		EventLog: NewEventLogRepository(tables),
	}
}
