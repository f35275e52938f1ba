package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"nome" validate:"required"`
	Hidden string `json:"-" validate:"required"`
	Plain  string `validate:"required"`
}

func TestNewReportsJSONFieldNames(t *testing.T) {
	err := New().Struct(sample{})
	require.Error(t, err)

	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	require.Len(t, fieldErrs, 3)

	got := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		got = append(got, fe.Field())
	}
	assert.Equal(t, []string{"nome", "Hidden", "Plain"}, got)
}

func TestNewAcceptsValidStruct(t *testing.T) {
	assert.NoError(t, New().Struct(sample{Name: "a", Hidden: "b", Plain: "c"}))
}
