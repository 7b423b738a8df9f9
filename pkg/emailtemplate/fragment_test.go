package emailtemplate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFragment(t *testing.T) {
	tests := []struct {
		name     string
		block    Block
		contains []string
	}{
		{
			name:     "text wraps content verbatim",
			block:    Block{ID: "1", Kind: KindText, Content: "<p>Hello <strong>world</strong></p>"},
			contains: []string{`<div style="margin:0 0 16px 0;"><p>Hello <strong>world</strong></p></div>`},
		},
		{
			name:     "empty text renders an empty container",
			block:    Block{ID: "1", Kind: KindText},
			contains: []string{`<div style="margin:0 0 16px 0;"></div>`},
		},
		{
			name:     "image references the url",
			block:    Block{ID: "2", Kind: KindImage, URL: "https://x/y.png"},
			contains: []string{`<img src="https://x/y.png"`},
		},
		{
			name:     "image without url keeps an empty source",
			block:    Block{ID: "2", Kind: KindImage},
			contains: []string{`<img src=""`},
		},
		{
			name:     "cta uses label and url",
			block:    Block{ID: "3", Kind: KindCTA, Content: "Buy now", URL: "https://shop.example.com"},
			contains: []string{`href="https://shop.example.com"`, `>Buy now</a>`, `text-align:center;`},
		},
		{
			name:     "cta falls back to default label and anchor",
			block:    Block{ID: "3", Kind: KindCTA},
			contains: []string{`href="#"`, `>Click Me</a>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderFragment(tt.block)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRenderFragment_UnknownKind(t *testing.T) {
	assert.Equal(t, "", RenderFragment(Block{ID: "x", Kind: "video", Content: "ignored"}))
}

func TestRenderFragments_OrderAndSeparator(t *testing.T) {
	blocks := []Block{
		{ID: "a", Kind: KindCTA, Content: "First"},
		{ID: "b", Kind: "unknown"},
		{ID: "c", Kind: KindText, Content: "Second"},
	}

	out := RenderFragments(blocks)

	parts := strings.Split(out, "\n")
	assert.Len(t, parts, 2)
	assert.Contains(t, parts[0], "First")
	assert.Contains(t, parts[1], "Second")
}

func TestRenderFragments_Empty(t *testing.T) {
	assert.Equal(t, "", RenderFragments(nil))
}
