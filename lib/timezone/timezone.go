package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
}

// force the timezone to Karlsruhe local time because the refresh
// schedule and the history log are keyed on the canteen's calendar
// day, not on whatever zone the host happens to run in
func Now() time.Time {
	return time.Now().In(Location)
}
