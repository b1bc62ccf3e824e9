// Package templates holds the templ components shared by every page: the
// layout, banners and form controls.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// HTML writes markup to a templ render target. The first write error sticks
// and every later write is skipped.
type HTML struct {
	ctx context.Context
	w   io.Writer
	err error
}

// Component adapts a markup-writing func to templ.Component.
func Component(fn func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &HTML{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Raw writes parts unescaped.
func (h *HTML) Raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// Text writes s HTML-escaped.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Textf formats and writes escaped text.
func (h *HTML) Textf(format string, args ...any) {
	h.Text(fmt.Sprintf(format, args...))
}

// urlAttrs are the attributes whose values pass through templ.URL, the
// sanitizer templ applies to href expressions.
var urlAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"hx-get":     true,
	"hx-post":    true,
}

// Open writes a start tag. attrs are name, value pairs; values are escaped
// and URL-valued attributes are sanitized first.
func (h *HTML) Open(tag string, attrs ...string) {
	h.Raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if urlAttrs[name] {
			value = string(templ.URL(value))
		}
		h.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
	}
	h.Raw(">")
}

// Close writes an end tag.
func (h *HTML) Close(tag string) {
	h.Raw("</", tag, ">")
}

// Elem writes an element whose only content is text.
func (h *HTML) Elem(tag, text string, attrs ...string) {
	h.Open(tag, attrs...)
	h.Text(text)
	h.Close(tag)
}

// Void writes an element with no end tag, such as input.
func (h *HTML) Void(tag string, attrs ...string) {
	h.Open(tag, attrs...)
}

// Render writes a nested component.
func (h *HTML) Render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// CSRF writes the hidden token field every POST form carries.
func (h *HTML) CSRF(token string) {
	h.Void("input", "type", "hidden", "name", "csrf_token", "value", token)
}

// Hidden writes a hidden input.
func (h *HTML) Hidden(name, value string) {
	h.Void("input", "type", "hidden", "name", name, "value", value)
}

// Field writes a labelled input. extra are additional attribute pairs.
func (h *HTML) Field(label, name, typ, value string, extra ...string) {
	h.Open("label", "class", "field")
	h.Elem("span", label)
	attrs := append([]string{"type", typ, "name", name, "value", value}, extra...)
	h.Void("input", attrs...)
	h.Close("label")
}

// TextArea writes a labelled textarea.
func (h *HTML) TextArea(label, name, value string, rows int) {
	h.Open("label", "class", "field")
	h.Elem("span", label)
	h.Elem("textarea", value, "name", name, "rows", strconv.Itoa(rows))
	h.Close("label")
}

// Select writes a labelled select. An empty placeholder is omitted.
func (h *HTML) Select(label, name, placeholder string, options []vm.Option, extra ...string) {
	h.Open("label", "class", "field")
	h.Elem("span", label)
	h.Open("select", append([]string{"name", name}, extra...)...)
	if placeholder != "" {
		h.Elem("option", placeholder, "value", "")
	}
	for _, o := range options {
		if o.Selected {
			h.Elem("option", o.Label, "value", o.Value, "selected", "selected")
			continue
		}
		h.Elem("option", o.Label, "value", o.Value)
	}
	h.Close("select")
	h.Close("label")
}

// Submit writes a submit button.
func (h *HTML) Submit(label, class string) {
	h.Elem("button", label, "type", "submit", "class", class)
}

// PostButton writes a one-button form posting to action. hidden are name,
// value pairs sent along.
func (h *HTML) PostButton(action, label, class, token string, hidden ...string) {
	h.Open("form", "method", "post", "action", action, "class", "inline")
	h.CSRF(token)
	for i := 0; i+1 < len(hidden); i += 2 {
		h.Hidden(hidden[i], hidden[i+1])
	}
	h.Submit(label, class)
	h.Close("form")
}

// Link writes an anchor.
func (h *HTML) Link(href, text string, attrs ...string) {
	h.Elem("a", text, append([]string{"href", href}, attrs...)...)
}

// Banner writes a dismissible message. kind is "success" or "error".
func (h *HTML) Banner(kind, msg string) {
	if msg == "" {
		return
	}
	role := "status"
	if kind == "error" {
		role = "alert"
	}
	h.Elem("div", msg, "class", "banner banner-"+kind, "role", role, "data-autodismiss", "3000")
}

// Inline writes an in-section error that does not auto-dismiss.
func (h *HTML) Inline(msg string) {
	if msg == "" {
		return
	}
	h.Elem("p", msg, "class", "inline-error", "role", "alert")
}
