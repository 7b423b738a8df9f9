package emailtemplate

import "strings"

// Preview renders an approximation of the final email without evaluating
// the template language. The sections block, including any control markup
// inside it, is replaced by the fragment table output. Substituted values are
// never scanned again for placeholders.
func Preview(layout Layout, email Email) (string, error) {
	r, err := layout.sectionsRegion()
	if err != nil {
		return "", err
	}

	values := email.scalars()
	body := RenderFragments(email.Blocks)

	var sb strings.Builder
	sb.Grow(len(layout.Source) + len(body))
	sb.WriteString(substituteScalars(layout.Source[:r.start], values))
	sb.WriteString(body)
	sb.WriteString(substituteScalars(layout.Source[r.end:], values))
	return sb.String(), nil
}
