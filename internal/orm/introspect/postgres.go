// Package introspect reads column metadata from a live database. It provides
// ColumnTypeSource implementations that sit next to the static schema file.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/conduit-lang/modeltypes/internal/orm/schema"
)

const postgresColumnsQuery = `
SELECT
    c.column_name,
    c.data_type,
    c.is_nullable,
    COALESCE(
        array_agg(e.enumlabel ORDER BY e.enumsortorder) FILTER (WHERE e.enumlabel IS NOT NULL),
        '{}'
    ) AS enum_labels
FROM information_schema.columns c
LEFT JOIN pg_catalog.pg_namespace n ON n.nspname = c.udt_schema
LEFT JOIN pg_catalog.pg_type t ON t.typname = c.udt_name AND t.typnamespace = n.oid
LEFT JOIN pg_catalog.pg_enum e ON e.enumtypid = t.oid
WHERE c.table_schema = $1 AND c.table_name = $2
GROUP BY c.column_name, c.data_type, c.is_nullable, c.ordinal_position
ORDER BY c.ordinal_position`

// PostgresSource looks tables up through information_schema
type PostgresSource struct {
	DB     *sql.DB
	Schema string
}

// NewPostgresSource creates a source for the given schema; empty means public
func NewPostgresSource(db *sql.DB, schemaName string) *PostgresSource {
	if schemaName == "" {
		schemaName = "public"
	}
	return &PostgresSource{DB: db, Schema: schemaName}
}

// LookupTable reads the table's columns in ordinal order
func (p *PostgresSource) LookupTable(ctx context.Context, name string) (*schema.Table, bool, error) {
	rows, err := p.DB.QueryContext(ctx, postgresColumnsQuery, p.Schema, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var (
			colName, dataType, isNullable string
			labels                        pq.StringArray
		)
		if err := rows.Scan(&colName, &dataType, &isNullable, &labels); err != nil {
			return nil, false, fmt.Errorf("failed to scan column: %w", err)
		}

		kind := postgresKind(dataType, len(labels) > 0)
		col := schema.Column{
			Name:     colName,
			Kind:     kind,
			Nullable: strings.EqualFold(isNullable, "YES"),
		}
		if kind == schema.KindEnum {
			col.Options = []string(labels)
		}
		cols = append(cols, col)
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

func postgresKind(dataType string, hasLabels bool) schema.ColumnKind {
	switch strings.ToLower(dataType) {
	case "character varying", "varchar", "character", "char", "text", "uuid", "name", "citext":
		return schema.KindString
	case "smallint", "integer", "bigint":
		return schema.KindInt
	case "real", "double precision", "numeric", "decimal":
		return schema.KindFloat
	case "boolean":
		return schema.KindBool
	case "user-defined":
		if hasLabels {
			return schema.KindEnum
		}
		return schema.KindMixed
	default:
		return schema.KindMixed
	}
}
