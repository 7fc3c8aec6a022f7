package memory

import (
	"context"
	"testing"

	"packmates/internal/domain/calendar"
	"packmates/internal/domain/calendar/calendartest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRepo_Compliance(t *testing.T) {
	calendartest.Run(t, func(t *testing.T) calendar.Repository {
		return NewCalendarRepo()
	})
}

func TestCalendarRepo_ReturnsCopies(t *testing.T) {
	r := NewCalendarRepo()
	ctx := context.Background()

	e := calendartest.Entry("u1", calendar.EntryTypeRequest, calendartest.Day(1), calendartest.Day(2))
	e.Pets = []string{"p1"}
	require.NoError(t, r.Create(ctx, e))

	got, err := r.GetByID(ctx, e.ID)
	require.NoError(t, err)
	got.Pets[0] = "mutated"

	again, err := r.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", again.Pets[0])
}
