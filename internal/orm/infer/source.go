// Package infer runs type inference over a set of models and collects the
// results in a PropertyRegistry.
package infer

import (
	"context"

	"github.com/conduit-lang/modeltypes/internal/orm/schema"
)

// ColumnTypeSource resolves a table name to its column metadata.
// A missing table is reported as found == false, not as an error.
type ColumnTypeSource interface {
	LookupTable(ctx context.Context, name string) (table *schema.Table, found bool, err error)
}

// StaticSource serves tables from an in-memory schema aggregator
type StaticSource struct {
	agg *schema.Aggregator
}

// NewStaticSource wraps an aggregator
func NewStaticSource(agg *schema.Aggregator) *StaticSource {
	return &StaticSource{agg: agg}
}

// LookupTable never fails
func (s *StaticSource) LookupTable(_ context.Context, name string) (*schema.Table, bool, error) {
	if s == nil || s.agg == nil {
		return nil, false, nil
	}
	table, ok := s.agg.Lookup(name)
	return table, ok, nil
}
