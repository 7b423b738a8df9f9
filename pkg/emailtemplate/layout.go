package emailtemplate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrEmptyLayout              = errors.New("layout is empty")
	ErrMissingSectionBlock      = errors.New("layout has no sections block")
	ErrMultipleSectionBlocks    = errors.New("layout has more than one sections block")
	ErrUnterminatedSectionBlock = errors.New("layout sections block is not closed")
	ErrUnsupportedLayoutFormat  = errors.New("unsupported layout format")
)

// SectionsCollection is the name layouts iterate to render the body
const SectionsCollection = "sections"

// Format tells how the Liquid output is post-processed
type Format string

const (
	FormatHTML Format = "html"
	FormatMJML Format = "mjml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatHTML, "":
		return FormatHTML, nil
	case FormatMJML:
		return FormatMJML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLayoutFormat, s)
}

// Layout is the externally supplied template both renderers consume
type Layout struct {
	Source string
	Format Format
}

func NewLayout(source string, format Format) Layout {
	if format == "" {
		format = FormatHTML
	}
	return Layout{Source: source, Format: format}
}

var (
	// {% for x in coll %} / {% endfor %}, with optional whitespace-trim dashes
	loopTagRe = regexp.MustCompile(`\{%-?\s*(?:for\s+(\w+)\s+in\s+([\w.\[\]"']+|\([^)]*\))[^%]*|(endfor))\s*-?%\}`)

	// raw and comment bodies are never evaluated, so loops inside them don't count
	inertBlockRe = regexp.MustCompile(`(?s)\{%-?\s*raw\s*-?%\}.*?\{%-?\s*endraw\s*-?%\}|\{%-?\s*comment\s*-?%\}.*?\{%-?\s*endcomment\s*-?%\}`)

	scalarRe = regexp.MustCompile(`\{\{-?\s*(bgColor|textColor|title|footer)\s*-?\}\}`)
)

// region locates the repeated block inside a layout source
type region struct {
	start     int // first byte of the opening tag
	bodyStart int // first byte after the opening tag
	bodyEnd   int // first byte of the closing tag
	end       int // first byte after the closing tag
	variable  string
}

// Validate enforces the single sections block precondition
func (l Layout) Validate() error {
	_, err := l.sectionsRegion()
	return err
}

func (l Layout) sectionsRegion() (region, error) {
	if strings.TrimSpace(l.Source) == "" {
		return region{}, ErrEmptyLayout
	}

	tags := loopTagRe.FindAllStringSubmatchIndex(maskInertBlocks(l.Source), -1)

	opening := -1
	for i, m := range tags {
		if m[4] >= 0 && l.Source[m[4]:m[5]] == SectionsCollection {
			if opening >= 0 {
				return region{}, ErrMultipleSectionBlocks
			}
			opening = i
		}
	}
	if opening < 0 {
		return region{}, ErrMissingSectionBlock
	}

	depth := 0
	for _, m := range tags[opening:] {
		if m[6] >= 0 {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			open := tags[opening]
			return region{
				start:     open[0],
				bodyStart: open[1],
				bodyEnd:   m[0],
				end:       m[1],
				variable:  l.Source[open[2]:open[3]],
			}, nil
		}
	}
	return region{}, ErrUnterminatedSectionBlock
}

// maskInertBlocks blanks raw and comment blocks. Byte offsets are kept so
// matches on the result index into the original source.
func maskInertBlocks(source string) string {
	return inertBlockRe.ReplaceAllStringFunc(source, func(block string) string {
		return strings.Repeat(" ", len(block))
	})
}

// substituteScalars replaces known scalar placeholders in s. Unknown
// placeholders stay as they are.
func substituteScalars(s string, values map[string]string) string {
	return scalarRe.ReplaceAllStringFunc(s, func(tag string) string {
		name := scalarRe.FindStringSubmatch(tag)[1]
		return values[name]
	})
}
