package calendar_test

import (
	"context"
	"strings"
	"testing"

	"packmates/internal/domain/calendar"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ExportICS(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, calendar.CreateInput{
		UserID: "u", Type: calendar.EntryTypeRequest,
		StartDate: "2024-03-01", EndDate: "2024-03-03",
		Pets: []string{"p1"}, Reason: strPtr("weekend away"),
	})
	require.NoError(t, err)

	booked := calendar.StatusBooked
	in := availability("u", "2024-04-01", "2024-04-02")
	in.Status = &booked
	av, err := svc.Create(ctx, in)
	require.NoError(t, err)

	gone, err := svc.Create(ctx, availability("u", "2024-05-01", "2024-05-02"))
	require.NoError(t, err)
	_, err = svc.SoftDelete(ctx, gone.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, availability("someone-else", "2024-03-01", "2024-03-02"))
	require.NoError(t, err)

	body, err := svc.ExportICS(ctx, "u")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	byUID := map[string]*ical.VEvent{}
	for _, ev := range events {
		byUID[ev.Id()] = ev
	}

	ev := byUID[req.ID+"@packmates"]
	require.NotNil(t, ev)
	assert.Equal(t, "Sitting request", ev.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "weekend away", ev.GetProperty(ical.ComponentPropertyDescription).Value)
	assert.Equal(t, string(ical.ObjectStatusTentative), ev.GetProperty(ical.ComponentPropertyStatus).Value)

	start, err := ev.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(req.StartDate))

	ev = byUID[av.ID+"@packmates"]
	require.NotNil(t, ev)
	assert.Equal(t, string(ical.ObjectStatusConfirmed), ev.GetProperty(ical.ComponentPropertyStatus).Value)

	_, err = svc.ExportICS(ctx, " ")
	assert.Error(t, err)
}
