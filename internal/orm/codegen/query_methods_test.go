package codegen

import (
	"testing"

	"github.com/conduit-lang/modeltypes/internal/orm/schema"
)

func TestMethodName(t *testing.T) {
	tests := []struct {
		column   string
		expected string
	}{
		{"id", "whereId"},
		{"is_admin", "whereIsAdmin"},
		{"created_at", "whereCreatedAt"},
		{"userName", "whereUserName"},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := MethodName(tt.column); got != tt.expected {
				t.Errorf("MethodName(%q) = %q, want %q", tt.column, got, tt.expected)
			}
		})
	}
}

func TestAccessorSynthesizer_Synthesize(t *testing.T) {
	s := NewAccessorSynthesizer("")
	acc := s.Synthesize(schema.Column{Name: "is_admin", Kind: schema.KindBool}, `App\Models\User`)

	if acc.Name != "whereIsAdmin" {
		t.Errorf("expected whereIsAdmin, got %s", acc.Name)
	}

	if len(acc.Params) != 1 || acc.Params[0] != "$value" {
		t.Errorf("expected single $value param, got %v", acc.Params)
	}

	want := `\Illuminate\Database\Eloquent\Builder|\App\Models\User`
	if got := NewDocblockRenderer("").Render(acc.ReturnType); got != want {
		t.Errorf("return type = %s, want %s", got, want)
	}
}

func TestAccessorSynthesizer_CustomBuilder(t *testing.T) {
	s := NewAccessorSynthesizer(`\App\Query\Builder`)
	acc := s.Synthesize(schema.Column{Name: "id"}, "Post")

	if !acc.ReturnType.Equal(UnionOf(Class(`\App\Query\Builder`), Class("Post"))) {
		t.Errorf("unexpected return type %v", acc.ReturnType)
	}
}
