package emailtemplate

import "strings"

// Fragment markup shared by the preview renderer and the default layout.
// Keep DefaultLayoutSource in sync when changing any of these.
const (
	blockOpen    = `<div style="margin:0 0 16px 0;">`
	ctaBlockOpen = `<div style="margin:0 0 16px 0;text-align:center;">`
	blockClose   = `</div>`
	imageStyle   = `display:block;max-width:100%;height:auto;`
	buttonStyle  = `display:inline-block;padding:12px 24px;background-color:#007bff;color:#ffffff;text-decoration:none;border-radius:4px;`
)

// RenderFragment returns the HTML of one block. Content and URLs are
// inserted verbatim. Unknown kinds render nothing.
func RenderFragment(b Block) string {
	switch b.Kind {
	case KindText:
		return blockOpen + b.Content + blockClose
	case KindImage:
		return blockOpen + `<img src="` + b.URL + `" alt="" style="` + imageStyle + `" />` + blockClose
	case KindCTA:
		href := b.URL
		if href == "" {
			href = "#"
		}
		label := b.Content
		if label == "" {
			label = DefaultCTALabel
		}
		return ctaBlockOpen + `<a href="` + href + `" style="` + buttonStyle + `">` + label + `</a>` + blockClose
	}
	return ""
}

// RenderFragments renders the blocks in order, newline separated
func RenderFragments(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if f := RenderFragment(b); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, "\n")
}
