package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrSectionNotFound(t *testing.T) {
	err := &ErrSectionNotFound{ID: "abc"}
	assert.Equal(t, "section not found with ID: abc", err.Error())

	var target *ErrSectionNotFound
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, "abc", target.ID)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("bad input")
	assert.Equal(t, "validation error: bad input", err.Error())
	assert.IsType(t, ValidationError{}, err)
}

func TestErrUploadFailed(t *testing.T) {
	cause := errors.New("bucket unavailable")
	err := &ErrUploadFailed{SectionID: "s1", Err: cause}
	assert.Equal(t, "upload for section s1 failed: bucket unavailable", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestErrRenderFailed(t *testing.T) {
	cause := errors.New("unclosed tag")
	err := &ErrRenderFailed{Stage: "liquid", Err: cause}
	assert.Equal(t, "render failed during liquid: unclosed tag", err.Error())
	assert.ErrorIs(t, err, cause)
}
