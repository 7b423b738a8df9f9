package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// SectionKind is the type tag of a content block
type SectionKind string

const (
	SectionKindText  SectionKind = "text"
	SectionKindImage SectionKind = "image"
	SectionKindCTA   SectionKind = "cta"
)

// DefaultCTALabel is the label given to new call-to-action sections and
// shown by renderers when the label is empty.
const DefaultCTALabel = "Click Me"

func (k SectionKind) Validate() error {
	switch k {
	case SectionKindText, SectionKindImage, SectionKindCTA:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSectionKind, string(k))
}

// SectionField names an updatable field of a Section
type SectionField string

const (
	SectionFieldContent SectionField = "content"
	SectionFieldURL     SectionField = "url"
)

func (f SectionField) Validate() error {
	switch f {
	case SectionFieldContent, SectionFieldURL:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSectionField, string(f))
}

// Section is one content block of an email body.
// Content holds the HTML fragment of a text section or the label of a cta.
// URL holds the image source or the cta target.
type Section struct {
	ID      string      `json:"id"`
	Type    SectionKind `json:"type"`
	Content string      `json:"content"`
	URL     string      `json:"url"`
}

// Sections is the ordered body of an email. Operations never modify the
// receiver; each returns a new slice for the caller to adopt.
type Sections []Section

// newSectionID is swapped in tests that need deterministic identifiers
var newSectionID = uuid.NewString

// NewSection builds a section of the given kind with its defaults
func NewSection(kind SectionKind) (Section, error) {
	if err := kind.Validate(); err != nil {
		return Section{}, err
	}

	section := Section{
		ID:   newSectionID(),
		Type: kind,
	}
	if kind == SectionKindCTA {
		section.Content = DefaultCTALabel
	}
	return section, nil
}

func (s Sections) clone() Sections {
	out := make(Sections, len(s))
	copy(out, s)
	return out
}

// IndexOf returns the position of the section with the given id, or -1
func (s Sections) IndexOf(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the section with the given id
func (s Sections) Get(id string) (Section, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s[i], true
	}
	return Section{}, false
}

// Add appends a new section of the given kind and returns the new sequence
// together with the created section.
func (s Sections) Add(kind SectionKind) (Sections, Section, error) {
	section, err := NewSection(kind)
	if err != nil {
		return s, Section{}, err
	}
	// uuid collisions are not expected, but an id must never repeat
	for s.IndexOf(section.ID) >= 0 {
		section.ID = newSectionID()
	}

	out := make(Sections, len(s), len(s)+1)
	copy(out, s)
	return append(out, section), section, nil
}

// Update replaces one field of the section matching id. Unknown ids and
// unknown fields leave the sequence unchanged.
func (s Sections) Update(id string, field SectionField, value string) Sections {
	i := s.IndexOf(id)
	if i < 0 || field.Validate() != nil {
		return s
	}

	out := s.clone()
	switch field {
	case SectionFieldContent:
		out[i].Content = value
	case SectionFieldURL:
		out[i].URL = value
	}
	return out
}

// Remove drops the section matching id
func (s Sections) Remove(id string) Sections {
	i := s.IndexOf(id)
	if i < 0 {
		return s
	}

	out := make(Sections, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// Reorder moves the element at from to position to, shifting the elements
// in between. Both indexes must be within [0, len).
func (s Sections) Reorder(from, to int) (Sections, error) {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return s, fmt.Errorf("%w: from=%d to=%d length=%d", ErrIndexOutOfRange, from, to, len(s))
	}

	out := s.clone()
	if from == to {
		return out, nil
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// Validate checks the identity invariants and section kinds
func (s Sections) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, section := range s {
		if section.ID == "" {
			return NewValidationError(fmt.Sprintf("section at index %d has an empty id", i))
		}
		if _, dup := seen[section.ID]; dup {
			return NewValidationError(fmt.Sprintf("duplicate section id %s", section.ID))
		}
		seen[section.ID] = struct{}{}

		if err := section.Type.Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("section %s: %v", section.ID, err))
		}
	}
	return nil
}
