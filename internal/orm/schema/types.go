// Package schema provides the normalized, read-only table metadata that type
// inference works from. Tables are validated once when they are built and are
// never mutated afterwards.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ColumnKind is the base storage kind of a column
type ColumnKind int

const (
	KindMixed ColumnKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindEnum
)

// String returns the string representation of the column kind
func (k ColumnKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	default:
		return "mixed"
	}
}

// ParseColumnKind converts a kind name to a ColumnKind.
// Unrecognized names map to KindMixed.
func ParseColumnKind(s string) ColumnKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return KindString
	case "int":
		return KindInt
	case "float":
		return KindFloat
	case "bool":
		return KindBool
	case "enum":
		return KindEnum
	default:
		return KindMixed
	}
}

var (
	ErrEmptyTableName  = errors.New("table name cannot be empty")
	ErrEmptyColumnName = errors.New("column name cannot be empty")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrDuplicateTable  = errors.New("duplicate table name")
)

// Column describes one column of a table
type Column struct {
	Name     string
	Kind     ColumnKind
	Nullable bool
	// Options holds the enum values; only read when Kind is KindEnum.
	Options []string
	Comment string
}

// EnumOptions returns the options relevant to the column kind
func (c Column) EnumOptions() []string {
	if c.Kind != KindEnum {
		return nil
	}
	return c.Options
}

// Table is an ordered, validated set of columns
type Table struct {
	Name    string
	Columns []Column
}

// NewTable builds a table and rejects empty or duplicate column names.
// The column slice is copied so the caller cannot mutate the table later.
func NewTable(name string, columns []Column) (*Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyTableName
	}

	seen := make(map[string]struct{}, len(columns))
	cols := make([]Column, len(columns))
	for i, col := range columns {
		if strings.TrimSpace(col.Name) == "" {
			return nil, fmt.Errorf("table %s column #%d: %w", name, i+1, ErrEmptyColumnName)
		}
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("table %s column %s: %w", name, col.Name, ErrDuplicateColumn)
		}
		seen[col.Name] = struct{}{}

		col.Options = append([]string(nil), col.Options...)
		cols[i] = col
	}

	return &Table{Name: name, Columns: cols}, nil
}

// Column finds a column by name
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}
