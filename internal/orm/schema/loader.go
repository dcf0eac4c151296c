package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a static schema file
type Document struct {
	Tables []TableDef `yaml:"tables"`
}

// TableDef describes a table in a schema file
type TableDef struct {
	Name    string      `yaml:"name"`
	Columns []ColumnDef `yaml:"columns"`
}

// ColumnDef describes a column in a schema file
type ColumnDef struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Nullable bool     `yaml:"nullable"`
	Options  []string `yaml:"options"`
	Comment  string   `yaml:"comment"`
}

// LoadFile reads a schema file and builds an aggregator from it
func LoadFile(path string) (*Aggregator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	agg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return agg, nil
}

// Load decodes a schema document. Unknown keys are rejected.
func Load(r io.Reader) (*Aggregator, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return NewAggregator()
		}
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return doc.Build()
}

// Build validates every table definition and registers it
func (d *Document) Build() (*Aggregator, error) {
	agg, err := NewAggregator()
	if err != nil {
		return nil, err
	}

	for _, td := range d.Tables {
		cols := make([]Column, 0, len(td.Columns))
		for _, cd := range td.Columns {
			cols = append(cols, Column{
				Name:     cd.Name,
				Kind:     ParseColumnKind(cd.Type),
				Nullable: cd.Nullable,
				Options:  cd.Options,
				Comment:  cd.Comment,
			})
		}

		table, err := NewTable(td.Name, cols)
		if err != nil {
			return nil, err
		}
		if err := agg.Register(table); err != nil {
			return nil, err
		}
	}

	return agg, nil
}
