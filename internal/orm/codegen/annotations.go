package codegen

import (
	"fmt"
	"strings"
)

// RenderProperty returns the annotation lines for one property, including its
// accessor method when one was synthesized.
func RenderProperty(r Renderer, p Property) []string {
	var lines []string

	for _, v := range p.Views() {
		typ := r.RenderNullable(v.Type, v.Nullable)

		var line string
		if r.Format() == FormatTypeScript {
			switch v.Access {
			case AccessRead:
				line = fmt.Sprintf("get %s(): %s;", p.Name, typ)
			case AccessWrite:
				line = fmt.Sprintf("set %s(value: %s);", p.Name, typ)
			default:
				line = fmt.Sprintf("%s: %s;", p.Name, typ)
			}
			if v.Comment != "" {
				line += " // " + v.Comment
			}
		} else {
			tag := "@property"
			switch v.Access {
			case AccessRead:
				tag = "@property-read"
			case AccessWrite:
				tag = "@property-write"
			}
			line = fmt.Sprintf("%s %s $%s", tag, typ, p.Name)
			if v.Comment != "" {
				line += " " + v.Comment
			}
		}
		lines = append(lines, line)
	}

	if p.Accessor != nil {
		lines = append(lines, renderAccessor(r, *p.Accessor))
	}

	return lines
}

func renderAccessor(r Renderer, a AccessorSignature) string {
	if r.Format() == FormatTypeScript {
		params := make([]string, len(a.Params))
		for i, p := range a.Params {
			params[i] = strings.TrimPrefix(p, "$") + ": unknown"
		}
		return fmt.Sprintf("%s(%s): %s;", a.Name, strings.Join(params, ", "), r.Render(a.ReturnType))
	}
	return fmt.Sprintf("@method static %s %s(%s)", r.Render(a.ReturnType), a.Name, strings.Join(a.Params, ", "))
}

// RenderModel renders every property of a model as one annotation block
func RenderModel(r Renderer, model string, props []Property) string {
	var b strings.Builder

	if r.Format() == FormatTypeScript {
		name := Class(model)
		fmt.Fprintf(&b, "export interface %s {\n", r.Render(name))
		for _, p := range props {
			for _, line := range RenderProperty(r, p) {
				b.WriteString("  " + line + "\n")
			}
		}
		b.WriteString("}\n")
		return b.String()
	}

	b.WriteString("/**\n")
	fmt.Fprintf(&b, " * %s\n", strings.TrimPrefix(model, `\`))
	if len(props) > 0 {
		b.WriteString(" *\n")
	}
	for _, p := range props {
		for _, line := range RenderProperty(r, p) {
			b.WriteString(" * " + line + "\n")
		}
	}
	b.WriteString(" */\n")
	return b.String()
}
