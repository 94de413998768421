// Package store persists drill sheets in SQLite. A sheet is a named,
// ordered list of field configurations; learner progress is never stored.
package store

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	drill "github.com/o-ludvik/Olivers-pages"
)

//go:embed schema.sql
var schema string

// Sheet is a stored worksheet definition.
type Sheet struct {
	ID        string        `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	Fields    []drill.Field `json:"fields,omitempty"`
}

// fieldRow maps a fields table row onto a drill.Field.
type fieldRow struct {
	SheetID      string `db:"sheet_id"`
	Position     int    `db:"position"`
	FieldID      string `db:"field_id"`
	EquationTags string `db:"equation_tags"`
	Unknown      bool   `db:"unknown"`
	Text         string `db:"text"`
	Placeholder  string `db:"placeholder"`
}

// Store handles database operations.
type Store struct {
	db *sqlx.DB
}

// Open connects to the sheet database at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	// SQLite doesn't support multiple writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSheet stores a new sheet and returns it. Fields without an ID get a
// generated one so grading results stay addressable.
func (s *Store) CreateSheet(name string, fields []drill.Field) (*Sheet, error) {
	sheet := &Sheet{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
		Fields:    make([]drill.Field, len(fields)),
	}
	copy(sheet.Fields, fields)
	for i := range sheet.Fields {
		if sheet.Fields[i].ID == "" {
			sheet.Fields[i].ID = uuid.New().String()
		}
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO sheets (id, name, created_at) VALUES (?, ?, ?)",
		sheet.ID, sheet.Name, sheet.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert sheet: %w", err)
	}
	for i, f := range sheet.Fields {
		_, err = tx.Exec(
			`INSERT INTO fields (sheet_id, position, field_id, equation_tags, unknown, text, placeholder)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sheet.ID, i, f.ID, f.EquationTags, f.Unknown, f.Text, f.Placeholder,
		)
		if err != nil {
			return nil, fmt.Errorf("insert field %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return sheet, nil
}

// GetSheet retrieves a sheet and its fields by ID.
func (s *Store) GetSheet(id string) (*Sheet, error) {
	var sheet Sheet
	err := s.db.Get(&sheet, "SELECT id, name, created_at FROM sheets WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get sheet: %w", err)
	}
	var rows []fieldRow
	err = s.db.Select(&rows,
		"SELECT sheet_id, position, field_id, equation_tags, unknown, text, placeholder FROM fields WHERE sheet_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get sheet fields: %w", err)
	}
	sheet.Fields = make([]drill.Field, len(rows))
	for i, r := range rows {
		sheet.Fields[i] = drill.Field{
			ID:           r.FieldID,
			EquationTags: r.EquationTags,
			Unknown:      r.Unknown,
			Text:         r.Text,
			Placeholder:  r.Placeholder,
		}
	}
	return &sheet, nil
}

// ListSheets returns all sheets, newest first, without their fields.
func (s *Store) ListSheets() ([]Sheet, error) {
	var sheets []Sheet
	err := s.db.Select(&sheets, "SELECT id, name, created_at FROM sheets ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	return sheets, nil
}

// DeleteSheet removes a sheet and its fields.
func (s *Store) DeleteSheet(id string) error {
	res, err := s.db.Exec("DELETE FROM sheets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete sheet: no sheet %s", id)
	}
	return nil
}
