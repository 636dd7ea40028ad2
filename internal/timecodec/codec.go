package timecodec

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the wall-clock interchange format. Sub-minute precision
// does not exist in it.
const Layout = "2006-01-02T15:04"

// ErrInvalidInput marks an unparseable wall-clock value. Callers treat
// it as a validation failure, not a transport one.
var ErrInvalidInput = errors.New("invalid wall-clock value")

// Codec is the only code allowed to parse or format timestamps. Every
// other package exchanges either an absolute time.Time (UTC) or a
// timezone-naive wall-clock string in the codec's location.
type Codec struct {
	loc *time.Location
	now func() time.Time
}

// New creates a codec for the given location. A nil location means the
// process's local zone.
func New(loc *time.Location) *Codec {
	if loc == nil {
		loc = time.Local
	}
	return &Codec{loc: loc, now: time.Now}
}

// WithClock overrides the clock. Tests only.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// ToAbsolute parses a local wall-clock value into an absolute UTC
// timestamp. An empty input means "no reminder" and yields the zero
// time with no error.
func (c *Codec) ToAbsolute(wallClock string) (time.Time, error) {
	if wallClock == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(Layout, wallClock, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInput, wallClock)
	}
	return t.UTC(), nil
}

// ToLocalWallClock formats an absolute timestamp as a wall-clock value
// in the codec's location. The zero time maps back to "".
func (c *Codec) ToLocalWallClock(abs time.Time) string {
	if abs.IsZero() {
		return ""
	}
	return abs.In(c.loc).Format(Layout)
}

// ToWire formats an absolute timestamp in the remote interchange form
// (RFC 3339, UTC). The zero time maps to "".
func (c *Codec) ToWire(abs time.Time) string {
	if abs.IsZero() {
		return ""
	}
	return abs.UTC().Format(time.RFC3339)
}

// FromWire parses an RFC 3339 interchange value into an absolute UTC
// timestamp. An empty input yields the zero time with no error.
func (c *Codec) FromWire(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInput, value)
	}
	return t.UTC(), nil
}

// NowLocalWallClock returns the current instant truncated to the
// minute, in wall-clock form. Used as the minimum selectable reminder
// value so nothing can be scheduled in the past at entry time.
func (c *Codec) NowLocalWallClock() string {
	return c.now().In(c.loc).Format(Layout)
}

// Now returns the current instant truncated to the minute, as an
// absolute timestamp. Reminder validation compares against this.
func (c *Codec) Now() time.Time {
	return c.now().UTC().Truncate(time.Minute)
}
