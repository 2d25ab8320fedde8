// Package format renders dates and prices in one of a closed set of textual
// encodings, the way heterogeneous upstream systems would. The value is fixed
// first; only the text varies.
package format

import (
	"fmt"
	"time"

	"github.com/Rana718/winegen/internal/randsrc"
)

type DateLayout int

const (
	// DateISO is 2006-01-02 15:04:05.
	DateISO DateLayout = iota
	// DateISOZulu is 2006-01-02T15:04:05Z, for UTC instants.
	DateISOZulu
	// DateISOLocal is 2006-01-02T15:04:05 with no zone designator.
	DateISOLocal
	// DateEuropean is 02/01/2006 15:04. Seconds are dropped.
	DateEuropean
	// DateUS is 01-02-2006 15:04:05.
	DateUS
)

var dateLayouts = [...]struct {
	name   string
	layout string
}{
	DateISO:      {"iso", "2006-01-02 15:04:05"},
	DateISOZulu:  {"iso_z", "2006-01-02T15:04:05Z"},
	DateISOLocal: {"iso_t", "2006-01-02T15:04:05"},
	DateEuropean: {"eu", "02/01/2006 15:04"},
	DateUS:       {"us", "01-02-2006 15:04:05"},
}

// Date sets drawn from by the messy generators.
var (
	CustomerDates = []DateLayout{DateISO, DateEuropean, DateUS}
	EventDates    = []DateLayout{DateISOZulu, DateEuropean, DateUS}
)

// AllDates lists every declared date layout.
func AllDates() []DateLayout {
	return []DateLayout{DateISO, DateISOZulu, DateISOLocal, DateEuropean, DateUS}
}

func (d DateLayout) String() string {
	if d < 0 || int(d) >= len(dateLayouts) {
		return fmt.Sprintf("DateLayout(%d)", int(d))
	}
	return dateLayouts[d].name
}

// Layout returns the Go reference layout.
func (d DateLayout) Layout() string {
	return dateLayouts[d].layout
}

// Precision is the smallest unit the layout keeps.
func (d DateLayout) Precision() time.Duration {
	if d == DateEuropean {
		return time.Minute
	}
	return time.Second
}

func (d DateLayout) Render(t time.Time) string {
	if d == DateISOZulu {
		t = t.UTC()
	}
	return t.Format(d.Layout())
}

// RandomDate renders t in a layout drawn uniformly from set.
func RandomDate(src *randsrc.Source, t time.Time, set []DateLayout) (string, DateLayout) {
	layout := randsrc.Pick(src, set)
	return layout.Render(t), layout
}

// DetectDate finds the single declared layout s was rendered with and parses
// it back. Instants come back in UTC.
func DetectDate(s string) (DateLayout, time.Time, error) {
	found := -1
	var parsed time.Time
	for _, d := range AllDates() {
		t, err := time.Parse(d.Layout(), s)
		if err != nil {
			continue
		}
		if found >= 0 {
			return 0, time.Time{}, fmt.Errorf("date %q matches both %s and %s", s, DateLayout(found), d)
		}
		found = int(d)
		parsed = t
	}
	if found < 0 {
		return 0, time.Time{}, fmt.Errorf("date %q matches no known layout", s)
	}
	return DateLayout(found), parsed, nil
}
