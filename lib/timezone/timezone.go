package timezone

import (
	"fmt"
	"time"
)

// DefaultLocation is where the ledger's days start and end unless the
// configuration says otherwise.
const DefaultLocation = "Europe/Budapest"

var Location *time.Location

func init() {
	err := SetLocation(DefaultLocation)
	if err != nil {
		panic(err)
	}
}

// SetLocation changes the location of Now and DayBounds.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("timezone '%s': %w", name, err)
	}
	Location = loc
	return nil
}

// Now is the current time in Location, so that Year()/Month()/Day() agree
// with the day the ledger files a snapshot under.
func Now() time.Time {
	return time.Now().In(Location)
}

// DayBounds returns the start of the day of `t` in Location and the start
// of the following day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(Location)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
	end := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, Location)
	return start, end
}
