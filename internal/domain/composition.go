package domain

import (
	"fmt"
	"strings"

	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/asaskevich/govalidator"
)

const (
	DefaultBgColor   = "#ffffff"
	DefaultTextColor = "#000000"
	DefaultTitle     = "Title"
	DefaultFooter    = "© 2025 My Company"
)

// Composition is the full in-memory model of one email under construction
type Composition struct {
	BgColor   string   `json:"bgColor"`
	TextColor string   `json:"textColor"`
	Title     string   `json:"title"`
	Footer    string   `json:"footer"`
	Sections  Sections `json:"sections"`
}

// NewComposition returns a composition with the session start defaults
func NewComposition() Composition {
	return Composition{
		BgColor:   DefaultBgColor,
		TextColor: DefaultTextColor,
		Title:     DefaultTitle,
		Footer:    DefaultFooter,
		Sections:  Sections{},
	}
}

// WithSections returns a copy of the composition holding the given sections
func (c Composition) WithSections(sections Sections) Composition {
	c.Sections = sections
	return c
}

// Clone returns a composition that shares no section storage with c
func (c Composition) Clone() Composition {
	out := c
	out.Sections = make(Sections, len(c.Sections))
	copy(out.Sections, c.Sections)
	return out
}

// Validate checks colors and section invariants
func (c Composition) Validate() error {
	if err := ValidateColor("bgColor", c.BgColor); err != nil {
		return err
	}
	if err := ValidateColor("textColor", c.TextColor); err != nil {
		return err
	}
	return c.Sections.Validate()
}

// ValidateColor accepts hex (#fff, #ffffff) and rgb() colors
func ValidateColor(field, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return NewValidationError(fmt.Sprintf("%s is required", field))
	}
	if govalidator.IsHexcolor(v) || govalidator.IsRGBcolor(v) {
		return nil
	}
	return NewValidationError(fmt.Sprintf("%s must be a hex or rgb color, got %q", field, value))
}

// CompositionSettings carries the scalar fields of a composition. Nil fields
// are left untouched when applied.
type CompositionSettings struct {
	BgColor   *string `json:"bgColor,omitempty"`
	TextColor *string `json:"textColor,omitempty"`
	Title     *string `json:"title,omitempty"`
	Footer    *string `json:"footer,omitempty"`
}

func (s CompositionSettings) Validate() error {
	if s.BgColor != nil {
		if err := ValidateColor("bgColor", *s.BgColor); err != nil {
			return err
		}
	}
	if s.TextColor != nil {
		if err := ValidateColor("textColor", *s.TextColor); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns c with the non-nil settings copied in
func (s CompositionSettings) Apply(c Composition) Composition {
	if s.BgColor != nil {
		c.BgColor = strings.TrimSpace(*s.BgColor)
	}
	if s.TextColor != nil {
		c.TextColor = strings.TrimSpace(*s.TextColor)
	}
	if s.Title != nil {
		c.Title = *s.Title
	}
	if s.Footer != nil {
		c.Footer = *s.Footer
	}
	return c
}

// TemplateData converts the composition to renderer input
func (c Composition) TemplateData() emailtemplate.Email {
	blocks := make([]emailtemplate.Block, 0, len(c.Sections))
	for _, s := range c.Sections {
		blocks = append(blocks, emailtemplate.Block{
			ID:      s.ID,
			Kind:    string(s.Type),
			Content: s.Content,
			URL:     s.URL,
		})
	}
	return emailtemplate.Email{
		BgColor:   c.BgColor,
		TextColor: c.TextColor,
		Title:     c.Title,
		Footer:    c.Footer,
		Blocks:    blocks,
	}
}
