package schema

import (
	"errors"
	"testing"
)

func TestColumnKindString(t *testing.T) {
	tests := []struct {
		name     string
		kind     ColumnKind
		expected string
	}{
		{"KindString", KindString, "string"},
		{"KindInt", KindInt, "int"},
		{"KindFloat", KindFloat, "float"},
		{"KindBool", KindBool, "bool"},
		{"KindEnum", KindEnum, "enum"},
		{"KindMixed", KindMixed, "mixed"},
		{"out of range", ColumnKind(99), "mixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParseColumnKind(t *testing.T) {
	tests := []struct {
		input    string
		expected ColumnKind
	}{
		{"string", KindString},
		{"INT", KindInt},
		{" float ", KindFloat},
		{"bool", KindBool},
		{"enum", KindEnum},
		{"json", KindMixed},
		{"", KindMixed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseColumnKind(tt.input); got != tt.expected {
				t.Errorf("ParseColumnKind(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewTable(t *testing.T) {
	t.Run("valid table keeps column order", func(t *testing.T) {
		table, err := NewTable("users", []Column{
			{Name: "id", Kind: KindInt},
			{Name: "name", Kind: KindString},
			{Name: "status", Kind: KindEnum, Options: []string{"active", "banned"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(table.Columns) != 3 {
			t.Fatalf("expected 3 columns, got %d", len(table.Columns))
		}
		for i, want := range []string{"id", "name", "status"} {
			if table.Columns[i].Name != want {
				t.Errorf("column %d: expected %s, got %s", i, want, table.Columns[i].Name)
			}
		}
	})

	t.Run("duplicate column", func(t *testing.T) {
		_, err := NewTable("users", []Column{
			{Name: "id", Kind: KindInt},
			{Name: "id", Kind: KindString},
		})
		if !errors.Is(err, ErrDuplicateColumn) {
			t.Errorf("expected ErrDuplicateColumn, got %v", err)
		}
	})

	t.Run("empty column name", func(t *testing.T) {
		_, err := NewTable("users", []Column{{Name: " ", Kind: KindInt}})
		if !errors.Is(err, ErrEmptyColumnName) {
			t.Errorf("expected ErrEmptyColumnName, got %v", err)
		}
	})

	t.Run("empty table name", func(t *testing.T) {
		_, err := NewTable("", nil)
		if !errors.Is(err, ErrEmptyTableName) {
			t.Errorf("expected ErrEmptyTableName, got %v", err)
		}
	})

	t.Run("input is copied", func(t *testing.T) {
		cols := []Column{{Name: "status", Kind: KindEnum, Options: []string{"a", "b"}}}
		table, err := NewTable("t", cols)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cols[0].Name = "changed"
		cols[0].Options[0] = "z"

		if table.Columns[0].Name != "status" || table.Columns[0].Options[0] != "a" {
			t.Error("table should not observe caller mutations")
		}
	})
}

func TestColumnEnumOptions(t *testing.T) {
	enum := Column{Name: "s", Kind: KindEnum, Options: []string{"a"}}
	if got := enum.EnumOptions(); len(got) != 1 || got[0] != "a" {
		t.Errorf("expected [a], got %v", got)
	}

	str := Column{Name: "s", Kind: KindString, Options: []string{"a"}}
	if got := str.EnumOptions(); got != nil {
		t.Errorf("options on non-enum column should be ignored, got %v", got)
	}
}

func TestTableColumn(t *testing.T) {
	table, _ := NewTable("posts", []Column{{Name: "title", Kind: KindString}})

	if _, ok := table.Column("title"); !ok {
		t.Error("expected title column")
	}
	if _, ok := table.Column("body"); ok {
		t.Error("did not expect body column")
	}
}
