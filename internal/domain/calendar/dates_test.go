package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"date only", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"date only with spaces", " 2024-03-01 ", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"utc midnight", "2024-03-01T00:00:00.000Z", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"midnight with zero offset", "2024-03-01T00:00:00+00:00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"midnight positive offset is an instant", "2024-03-01T00:00:00+05:00", time.Date(2024, 2, 29, 19, 0, 0, 0, time.UTC)},
		{"midnight negative offset is an instant", "2024-03-01T00:00:00.000-08:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"midnight without zone", "2024-03-01T00:00:00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"instant converted to utc", "2024-03-01T10:30:00+02:00", time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"instant without zone read as utc", "2024-03-01T10:30", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"millis kept", "2024-03-01T00:00:00.001Z", time.Date(2024, 3, 1, 0, 0, 0, int(time.Millisecond), time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDate("startDate", tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalizeDate_OffsetPairKeepsOrder(t *testing.T) {
	start, err := NormalizeDate("startDate", "2024-03-01T00:00:00+10:00")
	require.NoError(t, err)
	end, err := NormalizeDate("endDate", "2024-03-01T05:00:00+10:00")
	require.NoError(t, err)

	assert.True(t, end.After(start), "start=%s end=%s", start, end)
	assert.Equal(t, 5*time.Hour, end.Sub(start))
	assert.Equal(t, "2024-02-29T14:00:00.000Z", FormatDate(start))
}

func TestNormalizeDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "tomorrow", "2024-13-01", "01/03/2024"} {
		_, err := NormalizeDate("endDate", in)
		require.Error(t, err, in)

		var de *InvalidDateError
		require.True(t, errors.As(err, &de), in)
		assert.Equal(t, "endDate", de.Field)
	}

	_, err := NormalizeDate("endDate", "")
	assert.EqualError(t, err, "endDate is required")
	_, err = NormalizeDate("endDate", "nope")
	assert.EqualError(t, err, "endDate must be a valid date")
}

func TestFormatDate(t *testing.T) {
	in := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01T00:00:00.000Z", FormatDate(in))

	loc := time.FixedZone("X", -3*3600)
	assert.Equal(t, "2024-03-01T03:04:05.120Z", FormatDate(time.Date(2024, 3, 1, 0, 4, 5, 120_000_000, loc)))
}
