package infer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	ustrings "github.com/conduit-lang/modeltypes/internal/util/strings"
)

// ModelDescriptor identifies a model, its table and its date fields
type ModelDescriptor struct {
	Identity string   `yaml:"identity"`
	Table    string   `yaml:"table"`
	Dates    []string `yaml:"dates"`
}

// IsDate reports whether the property is declared as a date field
func (m ModelDescriptor) IsDate(name string) bool {
	for _, d := range m.Dates {
		if d == name {
			return true
		}
	}
	return false
}

// ModelSource supplies the models to run inference on
type ModelSource interface {
	Models() ([]ModelDescriptor, error)
}

// Manifest is a static list of models, usually loaded from YAML
type Manifest struct {
	Entries []ModelDescriptor `yaml:"models"`
}

// Models implements ModelSource
func (m *Manifest) Models() ([]ModelDescriptor, error) {
	return append([]ModelDescriptor(nil), m.Entries...), nil
}

// LoadManifestFile reads a model manifest from disk
func LoadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := LoadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// DefaultTableName derives the conventional table for a model identity:
// the snake_cased, pluralized class basename (App\Models\BlogPost -> blog_posts).
func DefaultTableName(identity string) string {
	base := identity
	if i := strings.LastIndexAny(base, `\.`); i >= 0 {
		base = base[i+1:]
	}
	return pluralize(ustrings.ToSnakeCase(base))
}

func pluralize(word string) string {
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "y") && len(word) > 1 && !strings.ContainsRune("aeiou", rune(word[len(word)-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "ch"), strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

// LoadManifest decodes a manifest and checks every entry. A model without a
// table gets DefaultTableName.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return &m, nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	seen := make(map[string]struct{}, len(m.Entries))
	for i, e := range m.Entries {
		if strings.TrimSpace(e.Identity) == "" {
			return nil, fmt.Errorf("model #%d: missing identity", i+1)
		}
		if strings.TrimSpace(e.Table) == "" {
			m.Entries[i].Table = DefaultTableName(e.Identity)
		}
		if _, dup := seen[e.Identity]; dup {
			return nil, fmt.Errorf("model %s: listed more than once", e.Identity)
		}
		seen[e.Identity] = struct{}{}
	}

	return &m, nil
}
