package codegen

import (
	"github.com/conduit-lang/modeltypes/internal/orm/schema"
	ustrings "github.com/conduit-lang/modeltypes/internal/util/strings"
)

// DefaultBuilderType is the query builder class returned by where accessors
const DefaultBuilderType = `\Illuminate\Database\Eloquent\Builder`

// AccessorSignature describes a dynamic query method on a model
type AccessorSignature struct {
	Name       string
	ReturnType TypeExpr
	Params     []string
}

// AccessorSynthesizer derives a where<Column> query method per column
type AccessorSynthesizer struct {
	builderType string
}

// NewAccessorSynthesizer creates a synthesizer returning the given builder class
func NewAccessorSynthesizer(builderType string) *AccessorSynthesizer {
	if builderType == "" {
		builderType = DefaultBuilderType
	}
	return &AccessorSynthesizer{builderType: builderType}
}

// MethodName returns the accessor name for a column (is_admin -> whereIsAdmin)
func MethodName(column string) string {
	return ustrings.ToCamelCase("where_" + column)
}

// Synthesize builds the accessor for a column of the given model. The return
// type is scoped to the model so analyzers know which query it continues.
func (s *AccessorSynthesizer) Synthesize(col schema.Column, model string) AccessorSignature {
	return AccessorSignature{
		Name:       MethodName(col.Name),
		ReturnType: UnionOf(Class(s.builderType), Class(model)),
		Params:     []string{"$value"},
	}
}
