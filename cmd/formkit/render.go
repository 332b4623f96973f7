package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

// printer writes colored output when the destination supports it.
type printer struct {
	w       io.Writer
	profile termenv.Profile
}

func newPrinter(w io.Writer) printer {
	return printer{w: w, profile: termenv.NewOutput(w).Profile}
}

func (p printer) style(s, color string) termenv.Style {
	return p.profile.String(s).Foreground(p.profile.Color(color))
}

// errors prints an error tree: nested schemas and list items are indented
// under their field.
func (p printer) errors(name string, errs *schema.Errors) {
	fmt.Fprintf(p.w, "%s %s\n", p.style("✗", "1"), p.style(name+" is invalid", "1").Bold())
	p.tree(errs, 1)
}

func (p printer) tree(errs *schema.Errors, depth int) {
	for field, fe := range errs.All() {
		p.fieldError(field, fe, depth)
	}
}

func (p printer) fieldError(key string, fe *schema.FieldError, depth int) {
	indent := strings.Repeat("  ", depth)
	label := p.style(key, "3")
	switch {
	case fe.Fields.Len() > 0:
		fmt.Fprintf(p.w, "%s%s:\n", indent, label)
		p.tree(fe.Fields, depth+1)
	case len(fe.Items) > 0:
		fmt.Fprintf(p.w, "%s%s:\n", indent, label)
		for _, item := range fe.Items {
			p.fieldError(strconv.Itoa(item.Index), item.Err, depth+1)
		}
	case len(fe.Messages) == 1:
		fmt.Fprintf(p.w, "%s%s: %s\n", indent, label, fe.Messages[0])
	default:
		fmt.Fprintf(p.w, "%s%s:\n", indent, label)
		for _, msg := range fe.Messages {
			fmt.Fprintf(p.w, "%s  - %s\n", indent, msg)
		}
	}
}

func (p printer) success(name string) {
	fmt.Fprintf(p.w, "%s %s\n", p.style("✓", "2"), p.style(name+" is valid", "2").Bold())
}
