package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	assert.Equal(t, "card not found with ID: c1", (&ErrNotFound{Entity: "card", ID: "c1"}).Error())
	assert.Equal(t, "template not found", (&ErrTemplateNotFound{Message: "template not found"}).Error())
	assert.Equal(t, "validation error: id is required", NewValidationError("id is required").Error())

	var validationErr ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", NewValidationError("x")), &validationErr))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&ErrTemplateNotFound{}))
	assert.True(t, IsNotFound(&ErrCardNotFound{}))
	assert.True(t, IsNotFound(&ErrVisualResourceNotFound{}))
	assert.True(t, IsNotFound(&ErrNotFound{}))
	assert.False(t, IsNotFound(errors.New("template not found")))
	assert.False(t, IsNotFound(nil))
}
