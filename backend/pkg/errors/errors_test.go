package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorType(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"base error", NewBaseError(ErrorTypeGraph, "boom", nil), ErrorTypeGraph, true},
		{"typed error", NewGraphQueryFailed("create user", cause), ErrorTypeGraph, true},
		{"wrapped typed error", fmt.Errorf("row 3: %w", NewInputMalformedRow(3, "followers", cause)), ErrorTypeInput, true},
		{"other category", NewInputMissingColumn("type"), ErrorTypeGraph, false},
		{"nested category", NewInputMalformedRow(2, "", NewContextCancelled("ingest", cause)), ErrorTypeContext, true},
		{"plain error", cause, ErrorTypeGraph, false},
		{"nil", nil, ErrorTypeGraph, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsErrorType(tt.err, tt.errType))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	cause := stderrors.New("strconv.ParseInt: parsing \"abc\": invalid syntax")

	err := NewInputMalformedRow(7, "user_karma", cause)
	assert.Equal(t, "[input] malformed row 7: field user_karma: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)

	notFound := NewGraphNodeNotFound("Person", "name", "Keanu Reeves")
	assert.Equal(t, `[graph] Person not found: name="Keanu Reeves"`, notFound.Error())

	ambiguous := NewGraphAmbiguousMatch("Person", "name", "Tom Hanks", 2)
	assert.Equal(t, `[graph] 2 Person nodes match name="Tom Hanks"`, ambiguous.Error())
	assert.True(t, IsErrorType(ambiguous, ErrorTypeGraph))
}
