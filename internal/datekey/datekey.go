// Package datekey derives the YYYY_MM_DD keys used to name generated pages
// and decides which page is today's.
package datekey

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/wiserone/internal/constants"
)

// Key is a calendar date in the form used for page file names.
// Month is always two digits.
type Key struct {
	Year  int
	Month string
	Day   int
}

// FromTime returns the key for t's calendar date in t's location.
func FromTime(t time.Time) Key {
	return Key{
		Year:  t.Year(),
		Month: fmt.Sprintf("%02d", int(t.Month())),
		Day:   t.Day(),
	}
}

// String renders the key as YYYY_MM_DD.
func (k Key) String() string {
	return fmt.Sprintf("%04d_%s_%02d", k.Year, k.Month, k.Day)
}

// Filename is the page file name for the key.
func (k Key) Filename() string {
	return k.String() + constants.PageExtension
}

// Equal compares year, month and day with month and day zero-padded.
func (k Key) Equal(other Key) bool {
	return k.Year == other.Year && padMonth(k.Month) == padMonth(other.Month) && k.Day == other.Day
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Parse reads YYYY-MM-DD or YYYY_MM_DD, optionally followed by a 'T' and a time
// of day which is ignored.
func Parse(s string) (Key, error) {
	date, _, _ := strings.Cut(strings.TrimSpace(s), "T")
	layout := constants.DateFormat
	if strings.Contains(date, "_") {
		layout = constants.KeyFormat
	}
	t, err := time.Parse(layout, date)
	if err != nil {
		return Key{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// FromDateAdded returns the key for a quote's date_added value.
func FromDateAdded(dateAdded string) (Key, error) {
	return Parse(dateAdded)
}

// FromFilename reverses Filename. Names that are not a dated page, such as
// index.html or sitemap.xml, report false.
func FromFilename(name string) (Key, bool) {
	base, ok := strings.CutSuffix(name, constants.PageExtension)
	if !ok || !strings.Contains(base, "_") {
		return Key{}, false
	}
	k, err := Parse(base)
	if err != nil {
		return Key{}, false
	}
	return k, true
}

func padMonth(m string) string {
	n, err := strconv.Atoi(m)
	if err != nil {
		return m
	}
	return fmt.Sprintf("%02d", n)
}
