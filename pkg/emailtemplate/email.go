// Package emailtemplate renders composed emails from a layout document.
//
// A layout carries four scalar placeholders ({{bgColor}}, {{textColor}},
// {{title}}, {{footer}}) and exactly one repeated block delimited by
// {% for <name> in sections %} and {% endfor %}. Two renderers consume it:
// Preview substitutes placeholders with plain pattern matching and replaces
// the repeated block by the concatenated section fragments, while
// LiquidRenderer evaluates the full Liquid language against the same data.
package emailtemplate

// Block kinds understood by the fragment table
const (
	KindText  = "text"
	KindImage = "image"
	KindCTA   = "cta"
)

// DefaultCTALabel is shown on a call-to-action with an empty label
const DefaultCTALabel = "Click Me"

// Block is one section of the email body as seen by the renderers
type Block struct {
	ID      string
	Kind    string
	Content string
	URL     string
}

// Email is the render input
type Email struct {
	BgColor   string
	TextColor string
	Title     string
	Footer    string
	Blocks    []Block
}

// scalars maps placeholder names to values
func (e Email) scalars() map[string]string {
	return map[string]string{
		"bgColor":   e.BgColor,
		"textColor": e.TextColor,
		"title":     e.Title,
		"footer":    e.Footer,
	}
}

// Bindings returns the Liquid variables for the email. Every section exposes
// all of its fields whatever its kind.
func (e Email) Bindings() map[string]interface{} {
	sections := make([]map[string]interface{}, 0, len(e.Blocks))
	for _, b := range e.Blocks {
		sections = append(sections, map[string]interface{}{
			"id":      b.ID,
			"type":    b.Kind,
			"content": b.Content,
			"url":     b.URL,
		})
	}

	bindings := map[string]interface{}{
		"sections": sections,
	}
	for name, value := range e.scalars() {
		bindings[name] = value
	}
	return bindings
}
