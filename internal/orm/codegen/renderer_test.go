package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocblockRenderer(t *testing.T) {
	r := NewDocblockRenderer("")

	tests := []struct {
		name     string
		expr     TypeExpr
		expected string
	}{
		{"scalar", Scalar(ScalarInt), "int"},
		{"temporal default", TemporalType(), `\Illuminate\Support\Carbon`},
		{"string literal", StringLit("active"), "'active'"},
		{"quoted literal", StringLit("it's"), `'it\'s'`},
		{"trailing backslash", StringLiteralUnion([]string{`C:\`, "b"}), `'C:\\'|'b'`},
		{"escaped quote in value", StringLit(`a\'b`), `'a\\\'b'`},
		{"int union", UnionOf(IntLit(0), IntLit(1)), "0|1"},
		{"loose bool", UnionOf(IntLit(0), IntLit(1), Scalar(ScalarBool)), "0|1|bool"},
		{"enum", StringLiteralUnion([]string{"active", "banned"}), "'active'|'banned'"},
		{"class", Class(`App\Models\User`), `\App\Models\User`},
		{"qualified class", Class(`\App\Models\User`), `\App\Models\User`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Render(tt.expr))
		})
	}

	assert.Equal(t, "int|null", r.RenderNullable(Scalar(ScalarInt), true))
	assert.Equal(t, "int", r.RenderNullable(Scalar(ScalarInt), false))
	assert.Equal(t, `\Carbon\CarbonImmutable`, NewDocblockRenderer(`\Carbon\CarbonImmutable`).Render(TemporalType()))
}

func TestTypeScriptRenderer(t *testing.T) {
	r := &TypeScriptRenderer{}

	tests := []struct {
		name     string
		expr     TypeExpr
		expected string
	}{
		{"string", Scalar(ScalarString), "string"},
		{"int", Scalar(ScalarInt), "number"},
		{"float", Scalar(ScalarFloat), "number"},
		{"bool", Scalar(ScalarBool), "boolean"},
		{"mixed", Scalar(ScalarMixed), "unknown"},
		{"temporal", TemporalType(), "Date"},
		{"enum", StringLiteralUnion([]string{"a", "b"}), `"a" | "b"`},
		{"loose bool", UnionOf(IntLit(0), IntLit(1), Scalar(ScalarBool)), "0 | 1 | boolean"},
		{"class", Class(`\App\Models\User`), "User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Render(tt.expr))
		})
	}

	assert.Equal(t, "string | null", r.RenderNullable(Scalar(ScalarString), true))
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer("docblock", "")
	require.NoError(t, err)
	assert.Equal(t, FormatDocblock, r.Format())

	r, err = NewRenderer("", "")
	require.NoError(t, err)
	assert.Equal(t, FormatDocblock, r.Format())

	r, err = NewRenderer("TypeScript", "")
	require.NoError(t, err)
	assert.Equal(t, FormatTypeScript, r.Format())

	_, err = NewRenderer("yaml", "")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestTypeExprEqual(t *testing.T) {
	assert.True(t, Scalar("int").Equal(Scalar("int")))
	assert.False(t, Scalar("int").Equal(Scalar("float")))
	assert.False(t, Scalar("int").Equal(Class("int")))
	assert.True(t, TemporalType().Equal(TemporalType()))
	assert.False(t, IntLit(0).Equal(IntLit(1)))
	assert.False(t, UnionOf(IntLit(0), IntLit(1)).Equal(UnionOf(IntLit(0), IntLit(1), Scalar("bool"))))
	assert.False(t, StringLiteralUnion([]string{"a", "b"}).Equal(StringLiteralUnion([]string{"b", "a"})))
}
