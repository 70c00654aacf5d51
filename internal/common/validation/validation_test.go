package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string   `validate:"required"`
	Items []string `validate:"required,min=1"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "a", Items: []string{""}}))
}

func TestStruct_FailedFields(t *testing.T) {
	err := Struct(sample{})
	assert.Error(t, err)
	assert.Equal(t, []string{"Name", "Items"}, FailedFields(err))

	field, tag, ok := FirstFailure(err)
	assert.True(t, ok)
	assert.Equal(t, "Name", field)
	assert.Equal(t, "required", tag)
}

func TestStruct_EmptySlice(t *testing.T) {
	err := Struct(sample{Name: "a", Items: []string{}})
	assert.Equal(t, []string{"Items"}, FailedFields(err))
}

func TestFailedFields_NotValidationError(t *testing.T) {
	assert.Nil(t, FailedFields(errors.New("x")))
	_, _, ok := FirstFailure(nil)
	assert.False(t, ok)
}
