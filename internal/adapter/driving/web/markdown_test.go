package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNotes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains []string
		excludes []string
	}{
		{name: "blank", src: "  \n"},
		{
			name:     "payment terms",
			src:      "Pay within **30 days**.",
			contains: []string{"<strong>30 days</strong>"},
		},
		{
			name:     "bank table",
			src:      "| Bank | IBAN |\n|---|---|\n| Acme | DE00 1234 |",
			contains: []string{"<table>", "<td>DE00 1234</td>"},
		},
		{
			name:     "struck line",
			src:      "~~old rate~~",
			contains: []string{"<del>old rate</del>"},
		},
		{
			name:     "external link",
			src:      "[terms](https://example.com/terms)",
			contains: []string{`href="https://example.com/terms"`, `rel="nofollow`, `target="_blank"`},
		},
		{
			name:     "raw script",
			src:      `<script>alert("x")</script>`,
			excludes: []string{"<script", "alert"},
		},
		{
			name:     "event handler",
			src:      `<img src="x" onerror="alert(1)">`,
			excludes: []string{"onerror", "<img"},
		},
		{
			name:     "markdown image",
			src:      "![logo](https://example.com/logo.png)",
			excludes: []string{"<img"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderNotes(tt.src)
			if len(tt.contains) == 0 && len(tt.excludes) == 0 {
				assert.Empty(t, got)
			}
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}
}
