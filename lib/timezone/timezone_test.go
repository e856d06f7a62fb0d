package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	require.NoError(t, SetLocation(DefaultLocation))
	loc := Location

	cases := []struct {
		now         time.Time
		expectStart time.Time
		expectStop  time.Time
	}{
		{
			now:         time.Date(2024, time.August, 26, 13, 45, 0, 0, loc),
			expectStart: time.Date(2024, time.August, 26, 0, 0, 0, 0, loc),
			expectStop:  time.Date(2024, time.August, 27, 0, 0, 0, 0, loc),
		},
		{
			now:         time.Date(2024, time.August, 31, 23, 59, 59, 0, loc),
			expectStart: time.Date(2024, time.August, 31, 0, 0, 0, 0, loc),
			expectStop:  time.Date(2024, time.September, 1, 0, 0, 0, 0, loc),
		},
		{
			// 22:30 UTC is already the next day in Budapest
			now:         time.Date(2024, time.August, 25, 22, 30, 0, 0, time.UTC),
			expectStart: time.Date(2024, time.August, 26, 0, 0, 0, 0, loc),
			expectStop:  time.Date(2024, time.August, 27, 0, 0, 0, 0, loc),
		},
		{
			// daylight saving ends, the day is 25 hours long
			now:         time.Date(2024, time.October, 27, 12, 0, 0, 0, loc),
			expectStart: time.Date(2024, time.October, 27, 0, 0, 0, 0, loc),
			expectStop:  time.Date(2024, time.October, 28, 0, 0, 0, 0, loc),
		},
	}

	for _, test := range cases {
		start, stop := DayBounds(test.now)
		require.True(t, test.expectStart.Equal(start), "%s != %s", test.expectStart, start)
		require.True(t, test.expectStop.Equal(stop), "%s != %s", test.expectStop, stop)
	}
}

func TestSetLocation(t *testing.T) {
	t.Cleanup(func() { SetLocation(DefaultLocation) })

	require.NoError(t, SetLocation("America/Los_Angeles"))
	require.Equal(t, "America/Los_Angeles", Now().Location().String())

	require.Error(t, SetLocation("Nowhere/Special"))
	require.Equal(t, "America/Los_Angeles", Location.String())
}
