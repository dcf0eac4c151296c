// Package codegen derives annotation types for model properties from column
// metadata and renders them for a target annotation syntax.
package codegen

// ExprKind tags the node type of a TypeExpr
type ExprKind int

const (
	ExprScalar ExprKind = iota
	ExprTemporal
	ExprStringLiteral
	ExprIntLiteral
	ExprClass
	ExprUnion
)

// Canonical scalar names
const (
	ScalarString = "string"
	ScalarInt    = "int"
	ScalarFloat  = "float"
	ScalarBool   = "bool"
	ScalarMixed  = "mixed"
)

// TypeExpr is a renderer-independent type expression.
// Literal unions are built from member lists, never from concatenated text.
type TypeExpr struct {
	Kind ExprKind
	// Name is the scalar or class name
	Name string
	// Value is the string literal value
	Value string
	// Int is the integer literal value
	Int     int
	Members []TypeExpr
}

// Scalar creates a scalar type node
func Scalar(name string) TypeExpr {
	return TypeExpr{Kind: ExprScalar, Name: name}
}

// TemporalType creates the date/time node; renderers choose the concrete class
func TemporalType() TypeExpr {
	return TypeExpr{Kind: ExprTemporal}
}

// StringLit creates a string literal node
func StringLit(v string) TypeExpr {
	return TypeExpr{Kind: ExprStringLiteral, Value: v}
}

// IntLit creates an integer literal node
func IntLit(v int) TypeExpr {
	return TypeExpr{Kind: ExprIntLiteral, Int: v}
}

// Class creates a named class/type reference
func Class(name string) TypeExpr {
	return TypeExpr{Kind: ExprClass, Name: name}
}

// UnionOf creates a union preserving member order. A single member collapses
// to that member.
func UnionOf(members ...TypeExpr) TypeExpr {
	if len(members) == 1 {
		return members[0]
	}
	return TypeExpr{Kind: ExprUnion, Members: append([]TypeExpr(nil), members...)}
}

// StringLiteralUnion builds the union of the given literal values in order
func StringLiteralUnion(values []string) TypeExpr {
	members := make([]TypeExpr, len(values))
	for i, v := range values {
		members[i] = StringLit(v)
	}
	return UnionOf(members...)
}

// Equal reports whether two expressions are structurally identical
func (e TypeExpr) Equal(other TypeExpr) bool {
	if e.Kind != other.Kind {
		return false
	}

	switch e.Kind {
	case ExprScalar, ExprClass:
		return e.Name == other.Name
	case ExprTemporal:
		return true
	case ExprStringLiteral:
		return e.Value == other.Value
	case ExprIntLiteral:
		return e.Int == other.Int
	case ExprUnion:
		if len(e.Members) != len(other.Members) {
			return false
		}
		for i := range e.Members {
			if !e.Members[i].Equal(other.Members[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the expression in docblock syntax, mainly for debugging
func (e TypeExpr) String() string {
	return NewDocblockRenderer("").Render(e)
}
