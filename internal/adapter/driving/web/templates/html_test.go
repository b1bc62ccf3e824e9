package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, fn func(h *HTML)) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Component(fn).Render(context.Background(), &buf))
	return buf.String()
}

func TestOpen_SanitizesURLAttributes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(h *HTML)
		want string
	}{
		{
			name: "local link",
			fn:   func(h *HTML) { h.Link("/expense-type?costCenter=2", "Types") },
			want: `<a href="/expense-type?costCenter=2">Types</a>`,
		},
		{
			name: "https link",
			fn:   func(h *HTML) { h.Link("https://example.com/a", "Docs") },
			want: `<a href="https://example.com/a">Docs</a>`,
		},
		{
			name: "script link",
			fn:   func(h *HTML) { h.Link("javascript:alert(1)", "x") },
			want: `<a href="about:invalid#TemplFailedSanitizationURL">x</a>`,
		},
		{
			name: "form action",
			fn:   func(h *HTML) { h.Open("form", "action", "JavaScript:void(0)") },
			want: `<form action="about:invalid#TemplFailedSanitizationURL">`,
		},
		{
			name: "htmx get",
			fn:   func(h *HTML) { h.Open("select", "hx-get", "data:text/html,hi") },
			want: `<select hx-get="about:invalid#TemplFailedSanitizationURL">`,
		},
		{
			name: "non-url attribute untouched",
			fn:   func(h *HTML) { h.Open("meta", "content", "3;url=/login") },
			want: `<meta content="3;url=/login">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.fn))
		})
	}
}

func TestText_Escapes(t *testing.T) {
	got := render(t, func(h *HTML) { h.Elem("td", `Operations <HQ> & "Co"`) })
	assert.Equal(t, `<td>Operations &lt;HQ&gt; &amp; &#34;Co&#34;</td>`, got)
}
