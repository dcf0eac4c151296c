package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Aggregator maps table names to their validated schema
type Aggregator struct {
	tables map[string]*Table
	mu     sync.RWMutex
}

// NewAggregator creates an aggregator seeded with the given tables
func NewAggregator(tables ...*Table) (*Aggregator, error) {
	a := &Aggregator{
		tables: make(map[string]*Table, len(tables)),
	}
	for _, t := range tables {
		if err := a.Register(t); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a table. A second table with the same name is rejected.
func (a *Aggregator) Register(table *Table) error {
	if table == nil {
		return fmt.Errorf("table cannot be nil")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.tables[table.Name]; exists {
		return fmt.Errorf("table %s: %w", table.Name, ErrDuplicateTable)
	}
	a.tables[table.Name] = table
	return nil
}

// Lookup retrieves a table by name
func (a *Aggregator) Lookup(name string) (*Table, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	table, exists := a.tables[name]
	return table, exists
}

// Tables returns the sorted list of table names
func (a *Aggregator) Tables() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.tables))
	for name := range a.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tables
func (a *Aggregator) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.tables)
}
