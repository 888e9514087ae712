package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRowNotFound is returned when no data row has the requested id in column 0
	ErrRowNotFound = errors.New("row not found")
	// ErrTableNotFound is returned when a named table does not exist
	ErrTableNotFound = errors.New("table not found")
	// ErrTableExists is returned when a copy target name is already taken
	ErrTableExists = errors.New("table already exists")
	// ErrColumnNotFound is returned when a header has no column with the requested name
	ErrColumnNotFound = errors.New("column not found")
)

// Table is a handle to a named table whose first row is its header
type Table struct {
	Name   string
	Header []string

	id int64
}

// ColumnIndex returns the position of the named header column, or -1
func (t *Table) ColumnIndex(column string) int {
	for i, h := range t.Header {
		if h == column {
			return i
		}
	}
	return -1
}

// TableRepository interface defines operations on header-first tables
type TableRepository interface {
	EnsureTable(ctx context.Context, name string, header []string) (*Table, error)
	Lookup(ctx context.Context, name string) (*Table, error)
	Append(ctx context.Context, t *Table, row []string) error
	ScanAll(ctx context.Context, t *Table) ([][]string, error)
	UpdateField(ctx context.Context, t *Table, id, column, value string) error
	DeleteByID(ctx context.Context, t *Table, id string) error
	RowCount(ctx context.Context, t *Table) (int, error)
	Prune(ctx context.Context, t *Table, keep func(row []string) bool) (int, error)
	Copy(ctx context.Context, t *Table, name string) (*Table, error)
}

// tableRepository implements TableRepository on the sheets and sheet_rows tables
type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

// storedRow is one persisted row with its ordering key
type storedRow struct {
	rowID int64
	cells []string
}

// EnsureTable returns the named table, creating it with the given header if it
// is missing. An existing table keeps its header. A table with no rows at all
// gets the header written.
func (r *tableRepository) EnsureTable(ctx context.Context, name string, header []string) (*Table, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sheets (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		name, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", name, err)
	}

	t := &Table{Name: name}
	if err := tx.QueryRowContext(ctx, `SELECT id FROM sheets WHERE name = ?`, name).Scan(&t.id); err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", name, err)
	}

	existing, err := firstRow(ctx, tx, t.id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := insertRow(ctx, tx, t.id, header); err != nil {
			return nil, fmt.Errorf("failed to write header for %s: %w", name, err)
		}
		t.Header = append([]string(nil), header...)
	case err != nil:
		return nil, fmt.Errorf("failed to read header for %s: %w", name, err)
	default:
		t.Header = existing
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit table %s: %w", name, err)
	}

	return t, nil
}

// Lookup returns an existing table without creating it
func (r *tableRepository) Lookup(ctx context.Context, name string) (*Table, error) {
	t := &Table{Name: name}
	err := r.db.QueryRowContext(ctx, `SELECT id FROM sheets WHERE name = ?`, name).Scan(&t.id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrTableNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", name, err)
	}

	header, err := firstRow(ctx, r.db, t.id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read header for %s: %w", name, err)
	}
	t.Header = header

	return t, nil
}

// Append adds a row after the last row of the table
func (r *tableRepository) Append(ctx context.Context, t *Table, row []string) error {
	if err := insertRow(ctx, r.db, t.id, row); err != nil {
		return fmt.Errorf("failed to append row to %s: %w", t.Name, err)
	}
	return nil
}

// ScanAll returns every data row in insertion order, skipping the header row
func (r *tableRepository) ScanAll(ctx context.Context, t *Table) ([][]string, error) {
	rows, err := r.rows(ctx, r.db, t)
	if err != nil {
		return nil, err
	}

	result := make([][]string, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.cells)
	}
	return result, nil
}

// UpdateField sets one cell of the first data row whose column 0 equals id
func (r *tableRepository) UpdateField(ctx context.Context, t *Table, id, column, value string) error {
	col := t.ColumnIndex(column)
	if col < 0 {
		return fmt.Errorf("%s.%s: %w", t.Name, column, ErrColumnNotFound)
	}

	rows, err := r.rows(ctx, r.db, t)
	if err != nil {
		return err
	}

	target, ok := findRow(rows, id)
	if !ok {
		return fmt.Errorf("%s in %s: %w", id, t.Name, ErrRowNotFound)
	}

	cells := append([]string(nil), target.cells...)
	for len(cells) <= col {
		cells = append(cells, "")
	}
	cells[col] = value

	encoded, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE sheet_rows SET cells = ? WHERE id = ?`, string(encoded), target.rowID); err != nil {
		return fmt.Errorf("failed to update row %s in %s: %w", id, t.Name, err)
	}

	return nil
}

// DeleteByID removes the first data row whose column 0 equals id
func (r *tableRepository) DeleteByID(ctx context.Context, t *Table, id string) error {
	rows, err := r.rows(ctx, r.db, t)
	if err != nil {
		return err
	}

	target, ok := findRow(rows, id)
	if !ok {
		return fmt.Errorf("%s in %s: %w", id, t.Name, ErrRowNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM sheet_rows WHERE id = ?`, target.rowID); err != nil {
		return fmt.Errorf("failed to delete row %s in %s: %w", id, t.Name, err)
	}

	return nil
}

// RowCount returns the number of data rows, not counting the header
func (r *tableRepository) RowCount(ctx context.Context, t *Table) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_rows WHERE sheet_id = ?`, t.id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", t.Name, err)
	}
	if count > 0 {
		count--
	}
	return count, nil
}

// Prune deletes every data row for which keep returns false and reports how many were removed
func (r *tableRepository) Prune(ctx context.Context, t *Table, keep func(row []string) bool) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := r.rows(ctx, tx, t)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, row := range rows {
		if keep(row.cells) {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE id = ?`, row.rowID); err != nil {
			return 0, fmt.Errorf("failed to prune %s: %w", t.Name, err)
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune of %s: %w", t.Name, err)
	}

	return removed, nil
}

// Copy duplicates the table, header included, under a new name
func (r *tableRepository) Copy(ctx context.Context, t *Table, name string) (*Table, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sheets (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		name, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrTableExists)
	}

	dst := &Table{Name: name, Header: append([]string(nil), t.Header...)}
	if dst.id, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", name, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet_id, cells)
		 SELECT ?, cells FROM sheet_rows WHERE sheet_id = ? ORDER BY id`,
		dst.id, t.id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to copy %s to %s: %w", t.Name, name, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit copy of %s: %w", t.Name, err)
	}

	return dst, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rows reads the data rows of a table, header excluded
func (r *tableRepository) rows(ctx context.Context, q querier, t *Table) ([]storedRow, error) {
	query := `
		SELECT id, cells
		FROM sheet_rows
		WHERE sheet_id = ?
		ORDER BY id ASC
	`

	rows, err := q.QueryContext(ctx, query, t.id)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows of %s: %w", t.Name, err)
	}
	defer rows.Close()

	var result []storedRow
	header := true
	for rows.Next() {
		var row storedRow
		var cells string
		if err := rows.Scan(&row.rowID, &cells); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", t.Name, err)
		}
		if header {
			header = false
			continue
		}
		if err := json.Unmarshal([]byte(cells), &row.cells); err != nil {
			return nil, fmt.Errorf("failed to decode row %d of %s: %w", row.rowID, t.Name, err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", t.Name, err)
	}

	return result, nil
}

// firstRow returns the header row of a table, or sql.ErrNoRows
func firstRow(ctx context.Context, q querier, sheetID int64) ([]string, error) {
	var cells string
	err := q.QueryRowContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet_id = ? ORDER BY id ASC LIMIT 1`, sheetID,
	).Scan(&cells)
	if err != nil {
		return nil, err
	}

	var header []string
	if err := json.Unmarshal([]byte(cells), &header); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	return header, nil
}

func insertRow(ctx context.Context, q querier, sheetID int64, row []string) error {
	if row == nil {
		row = []string{}
	}
	encoded, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	_, err = q.ExecContext(ctx, `INSERT INTO sheet_rows (sheet_id, cells) VALUES (?, ?)`, sheetID, string(encoded))
	return err
}

func findRow(rows []storedRow, id string) (storedRow, bool) {
	for _, row := range rows {
		if len(row.cells) > 0 && row.cells[0] == id {
			return row, true
		}
	}
	return storedRow{}, false
}
