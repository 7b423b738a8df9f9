package domain

import (
	"fmt"
	"strings"
)

type AddSectionRequest struct {
	Type SectionKind `json:"type"`
}

func (r *AddSectionRequest) Validate() error {
	r.Type = SectionKind(strings.ToLower(strings.TrimSpace(string(r.Type))))
	if r.Type == "" {
		return NewValidationError("type is required")
	}
	if err := r.Type.Validate(); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

type UpdateSectionRequest struct {
	ID    string       `json:"id"`
	Field SectionField `json:"field"`
	Value string       `json:"value"`
}

func (r *UpdateSectionRequest) Validate() error {
	if r.ID == "" {
		return NewValidationError("id is required")
	}
	if err := r.Field.Validate(); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

type RemoveSectionRequest struct {
	ID string `json:"id"`
}

func (r *RemoveSectionRequest) Validate() error {
	if r.ID == "" {
		return NewValidationError("id is required")
	}
	return nil
}

type ReorderSectionsRequest struct {
	FromIndex *int `json:"from_index"`
	ToIndex   *int `json:"to_index"`
}

func (r *ReorderSectionsRequest) Validate() (from, to int, err error) {
	if r.FromIndex == nil || r.ToIndex == nil {
		return 0, 0, NewValidationError("from_index and to_index are required")
	}
	if *r.FromIndex < 0 || *r.ToIndex < 0 {
		return 0, 0, NewValidationError(fmt.Sprintf("indexes must not be negative, got from_index=%d to_index=%d", *r.FromIndex, *r.ToIndex))
	}
	return *r.FromIndex, *r.ToIndex, nil
}
