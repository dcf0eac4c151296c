package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conduit-lang/modeltypes/internal/orm/schema"
)

const sqliteColumnsQuery = `SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`

// SQLiteSource looks tables up through pragma_table_info
type SQLiteSource struct {
	DB *sql.DB
}

// NewSQLiteSource creates a SQLite source
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{DB: db}
}

// LookupTable reads the table's columns in declaration order
func (s *SQLiteSource) LookupTable(ctx context.Context, name string) (*schema.Table, bool, error) {
	rows, err := s.DB.QueryContext(ctx, sqliteColumnsQuery, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var (
			colName, declType string
			notNull, pk       int
		)
		if err := rows.Scan(&colName, &declType, &notNull, &pk); err != nil {
			return nil, false, fmt.Errorf("failed to scan column: %w", err)
		}

		kind := sqliteKind(declType)
		// an INTEGER PRIMARY KEY is the rowid and can never be null
		rowid := pk > 0 && strings.EqualFold(strings.TrimSpace(declType), "integer")

		cols = append(cols, schema.Column{
			Name:     colName,
			Kind:     kind,
			Nullable: notNull == 0 && !rowid,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	if len(cols) == 0 {
		return nil, false, nil
	}

	table, err := schema.NewTable(name, cols)
	if err != nil {
		return nil, false, err
	}
	return table, true, nil
}

// sqliteKind applies SQLite's column affinity rules, checking booleans first
// since they are declared by name but stored with numeric affinity.
func sqliteKind(declType string) schema.ColumnKind {
	t := strings.ToUpper(declType)
	switch {
	case strings.Contains(t, "BOOL"):
		return schema.KindBool
	case strings.Contains(t, "INT"):
		return schema.KindInt
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return schema.KindString
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"),
		strings.Contains(t, "NUMERIC"), strings.Contains(t, "DECIMAL"):
		return schema.KindFloat
	default:
		return schema.KindMixed
	}
}
