package codegen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Supported annotation formats
const (
	FormatDocblock   = "docblock"
	FormatTypeScript = "typescript"
)

// DefaultTemporalClass is the date class used by the docblock renderer
const DefaultTemporalClass = `\Illuminate\Support\Carbon`

var ErrUnknownFormat = errors.New("unknown annotation format")

// Renderer serializes type expressions for one annotation syntax
type Renderer interface {
	Render(expr TypeExpr) string
	RenderNullable(expr TypeExpr, nullable bool) string
	Format() string
}

// NewRenderer returns the renderer for a format name
func NewRenderer(format, temporalClass string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatDocblock:
		return NewDocblockRenderer(temporalClass), nil
	case FormatTypeScript, "ts":
		return &TypeScriptRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

var docblockEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// DocblockRenderer emits PHPDoc/Psalm style types: 'a'|'b', 0|1|bool
type DocblockRenderer struct {
	TemporalClass string
}

// NewDocblockRenderer creates a docblock renderer; an empty class selects the default
func NewDocblockRenderer(temporalClass string) *DocblockRenderer {
	if temporalClass == "" {
		temporalClass = DefaultTemporalClass
	}
	return &DocblockRenderer{TemporalClass: temporalClass}
}

func (r *DocblockRenderer) Format() string { return FormatDocblock }

// Render converts an expression to docblock syntax
func (r *DocblockRenderer) Render(expr TypeExpr) string {
	switch expr.Kind {
	case ExprScalar:
		return expr.Name
	case ExprTemporal:
		return r.TemporalClass
	case ExprStringLiteral:
		return "'" + docblockEscaper.Replace(expr.Value) + "'"
	case ExprIntLiteral:
		return strconv.Itoa(expr.Int)
	case ExprClass:
		if strings.HasPrefix(expr.Name, `\`) {
			return expr.Name
		}
		return `\` + expr.Name
	case ExprUnion:
		parts := make([]string, len(expr.Members))
		for i, m := range expr.Members {
			parts[i] = r.Render(m)
		}
		return strings.Join(parts, "|")
	default:
		return ScalarMixed
	}
}

// RenderNullable appends |null when the property is nullable
func (r *DocblockRenderer) RenderNullable(expr TypeExpr, nullable bool) string {
	if !nullable {
		return r.Render(expr)
	}
	return r.Render(expr) + "|null"
}

// TypeScriptRenderer emits TypeScript types: "a" | "b", 0 | 1 | boolean
type TypeScriptRenderer struct{}

func (r *TypeScriptRenderer) Format() string { return FormatTypeScript }

// Render converts an expression to TypeScript syntax
func (r *TypeScriptRenderer) Render(expr TypeExpr) string {
	switch expr.Kind {
	case ExprScalar:
		switch expr.Name {
		case ScalarString:
			return "string"
		case ScalarInt, ScalarFloat:
			return "number"
		case ScalarBool:
			return "boolean"
		default:
			return "unknown"
		}
	case ExprTemporal:
		return "Date"
	case ExprStringLiteral:
		return strconv.Quote(expr.Value)
	case ExprIntLiteral:
		return strconv.Itoa(expr.Int)
	case ExprClass:
		name := strings.TrimPrefix(expr.Name, `\`)
		if i := strings.LastIndex(name, `\`); i >= 0 {
			name = name[i+1:]
		}
		return name
	case ExprUnion:
		parts := make([]string, len(expr.Members))
		for i, m := range expr.Members {
			parts[i] = r.Render(m)
		}
		return strings.Join(parts, " | ")
	default:
		return "unknown"
	}
}

// RenderNullable appends | null when the property is nullable
func (r *TypeScriptRenderer) RenderNullable(expr TypeExpr, nullable bool) string {
	if !nullable {
		return r.Render(expr)
	}
	return r.Render(expr) + " | null"
}
