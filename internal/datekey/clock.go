package datekey

import "time"

// Clock reports the current date in a fixed location. Today is recomputed on
// every call, so a process running across midnight sees the date change.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a Clock on the wall clock. A nil loc means time.Local.
func NewClock(loc *time.Location) *Clock {
	return NewClockAt(loc, time.Now)
}

// NewClockAt returns a Clock reading the time from now.
func NewClockAt(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{loc: loc, now: now}
}

// Now returns the current instant in the clock's location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the key for the current date.
func (c *Clock) Today() Key {
	return FromTime(c.Now())
}

// IsToday reports whether candidate (YYYY-MM-DD or YYYY_MM_DD, time suffix
// allowed) names today's date. Unparsable candidates are never today.
func (c *Clock) IsToday(candidate string) bool {
	k, err := Parse(candidate)
	if err != nil {
		return false
	}
	return k.Equal(c.Today())
}

// IsTodayKey reports whether k is today's key.
func (c *Clock) IsTodayKey(k Key) bool {
	return k.Equal(c.Today())
}

// Location returns the clock's location.
func (c *Clock) Location() *time.Location {
	return c.loc
}
