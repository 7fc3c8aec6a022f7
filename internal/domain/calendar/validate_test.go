package calendar

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTypeFields(t *testing.T) {
	assert.NoError(t, ValidateTypeFields(Entry{Type: EntryTypeAvailability}))
	assert.ErrorIs(t, ValidateTypeFields(Entry{Type: EntryTypeRequest, Reason: "trip"}), ErrMissingPets)
	assert.ErrorIs(t, ValidateTypeFields(Entry{Type: EntryTypeRequest, Pets: []string{"p"}, Reason: "  "}), ErrMissingReason)
	assert.NoError(t, ValidateTypeFields(Entry{Type: EntryTypeRequest, Pets: []string{"p"}, Reason: "trip"}))
}

func TestValidateCreateFields(t *testing.T) {
	long := strings.Repeat("x", MaxReasonLength+1)
	bad := Status("lost")
	zero := 0

	ve := validateCreateFields(CreateInput{
		Type:                  "offer",
		Status:                &bad,
		Pets:                  []string{"p1", " "},
		Reason:                &long,
		NeighborDistanceRange: &zero,
	})
	require.False(t, ve.empty())
	assert.ElementsMatch(t, []string{
		"userId is required",
		"type must be either 'availability' or 'request'",
		"status must be one of: available, requested, booked, cancelled, in_review",
		"each pet ID must be a non-empty reference",
		"reason must not exceed 500 characters",
		"neighborDistanceRange must be between 1 and 50",
	}, ve.Messages)

	ok := validateCreateFields(CreateInput{UserID: "u", Type: EntryTypeAvailability})
	assert.True(t, ok.empty())
}

func TestQueryValidate(t *testing.T) {
	q := Query{}
	require.NoError(t, q.Validate())
	assert.Equal(t, DefaultLimit, q.Limit)

	q = Query{Skip: -1, Limit: MaxLimit + 1}
	err := q.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Messages, 2)

	big := 51
	q = Query{Filter: Filter{MaxDistance: &big}}
	assert.Error(t, q.Validate())
}

func TestValidationError_Unwrap(t *testing.T) {
	err := newValidationError(ErrMissingPets)
	assert.ErrorIs(t, err, ErrMissingPets)
	assert.Equal(t, []string{"pets is required for request type"}, err.Messages)
}
