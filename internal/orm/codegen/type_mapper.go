package codegen

import (
	"strings"

	"github.com/conduit-lang/modeltypes/internal/orm/schema"
)

// looseBoolDialects store booleans as small integers, so a read yields 0 or 1
// while a write still accepts a boolean.
var looseBoolDialects = map[string]struct{}{
	"mysql":   {},
	"mariadb": {},
	"sqlite":  {},
}

// IsLooseBoolDialect reports whether the dialect stores booleans as integers
func IsLooseBoolDialect(dialect string) bool {
	_, ok := looseBoolDialects[strings.ToLower(strings.TrimSpace(dialect))]
	return ok
}

// TypeMapper maps column metadata to get/set annotation types.
// It holds no mutable state and is safe for concurrent use.
type TypeMapper struct {
	dialect   string
	looseBool bool
}

// NewTypeMapper creates a TypeMapper for the given storage dialect
func NewTypeMapper(dialect string) *TypeMapper {
	return &TypeMapper{
		dialect:   dialect,
		looseBool: IsLooseBoolDialect(dialect),
	}
}

// Dialect returns the dialect the mapper was built for
func (tm *TypeMapper) Dialect() string {
	return tm.dialect
}

// InferTypes returns the type a read produces and the type a write accepts.
// A date field overrides whatever kind the column declares. Nullability is
// left to the caller.
func (tm *TypeMapper) InferTypes(col schema.Column, isDate bool) (get TypeExpr, set TypeExpr) {
	if isDate {
		return TemporalType(), TemporalType()
	}

	switch col.Kind {
	case schema.KindString:
		return Scalar(ScalarString), Scalar(ScalarString)

	case schema.KindInt:
		return Scalar(ScalarInt), Scalar(ScalarInt)

	case schema.KindFloat:
		return Scalar(ScalarFloat), Scalar(ScalarFloat)

	case schema.KindBool:
		if tm.looseBool {
			return UnionOf(IntLit(0), IntLit(1)),
				UnionOf(IntLit(0), IntLit(1), Scalar(ScalarBool))
		}
		return Scalar(ScalarBool), Scalar(ScalarBool)

	case schema.KindEnum:
		if len(col.Options) == 0 {
			// nothing to constrain the value with
			return Scalar(ScalarString), Scalar(ScalarString)
		}
		union := StringLiteralUnion(col.Options)
		return union, union

	default:
		return Scalar(ScalarMixed), Scalar(ScalarMixed)
	}
}
