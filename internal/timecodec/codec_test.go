package timecodec

import (
	"errors"
	"testing"
	"time"
)

func TestToAbsoluteRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	codec := New(loc)

	tests := []struct {
		name      string
		wallClock string
	}{
		{name: "winter time", wallClock: "2026-01-15T09:30"},
		{name: "summer time", wallClock: "2026-07-15T18:45"},
		{name: "midnight", wallClock: "2026-03-01T00:00"},
		{name: "end of day", wallClock: "2026-12-31T23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := codec.ToAbsolute(tt.wallClock)
			if err != nil {
				t.Fatalf("ToAbsolute(%q) error: %v", tt.wallClock, err)
			}
			if abs.Location() != time.UTC {
				t.Errorf("ToAbsolute(%q) location = %v, want UTC", tt.wallClock, abs.Location())
			}
			back := codec.ToLocalWallClock(abs)
			if back != tt.wallClock {
				t.Errorf("round trip = %q, want %q", back, tt.wallClock)
			}
		})
	}
}

func TestToAbsoluteEmptyMeansNoReminder(t *testing.T) {
	codec := New(time.UTC)

	abs, err := codec.ToAbsolute("")
	if err != nil {
		t.Fatalf("ToAbsolute(\"\") error: %v", err)
	}
	if !abs.IsZero() {
		t.Errorf("ToAbsolute(\"\") = %v, want zero time", abs)
	}
	if got := codec.ToLocalWallClock(abs); got != "" {
		t.Errorf("ToLocalWallClock(zero) = %q, want \"\"", got)
	}
}

func TestToAbsoluteInvalidInput(t *testing.T) {
	codec := New(time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{name: "garbage", input: "not-a-time"},
		{name: "date only", input: "2026-01-15"},
		{name: "with seconds", input: "2026-01-15T09:30:00"},
		{name: "with offset", input: "2026-01-15T09:30+02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.ToAbsolute(tt.input)
			if err == nil {
				t.Fatalf("ToAbsolute(%q) should have failed", tt.input)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ToAbsolute(%q) error = %v, want ErrInvalidInput", tt.input, err)
			}
		})
	}
}

func TestToAbsoluteConvertsZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	codec := New(loc)

	abs, err := codec.ToAbsolute("2026-06-01T12:00")
	if err != nil {
		t.Fatalf("ToAbsolute() error: %v", err)
	}
	want := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	if !abs.Equal(want) {
		t.Errorf("ToAbsolute() = %v, want %v", abs, want)
	}
}

func TestNowLocalWallClock(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	fixed := time.Date(2026, 6, 1, 10, 30, 45, 0, time.UTC)
	codec := New(loc).WithClock(func() time.Time { return fixed })

	got := codec.NowLocalWallClock()
	want := "2026-06-01T12:30"
	if got != want {
		t.Errorf("NowLocalWallClock() = %q, want %q", got, want)
	}
}

func TestNowTruncatesToMinute(t *testing.T) {
	fixed := time.Date(2026, 6, 1, 10, 30, 45, 123456789, time.UTC)
	codec := New(time.UTC).WithClock(func() time.Time { return fixed })

	got := codec.Now()
	want := time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestNewNilLocationFallsBackToLocal(t *testing.T) {
	codec := New(nil)
	if codec.loc != time.Local {
		t.Errorf("New(nil) location = %v, want time.Local", codec.loc)
	}
}

func TestWireRoundTrip(t *testing.T) {
	codec := New(time.UTC)

	abs := time.Date(2026, 6, 10, 14, 30, 0, 0, time.UTC)
	wire := codec.ToWire(abs)
	if wire != "2026-06-10T14:30:00Z" {
		t.Errorf("ToWire = %q, want %q", wire, "2026-06-10T14:30:00Z")
	}

	back, err := codec.FromWire(wire)
	if err != nil {
		t.Fatalf("FromWire(%q) error: %v", wire, err)
	}
	if !back.Equal(abs) {
		t.Errorf("round trip = %v, want %v", back, abs)
	}
	if back.Location() != time.UTC {
		t.Errorf("FromWire(%q) location = %v, want UTC", wire, back.Location())
	}
}

func TestToWireNormalizesToUTC(t *testing.T) {
	codec := New(time.UTC)

	offset := time.FixedZone("UTC+2", 2*60*60)
	abs := time.Date(2026, 6, 10, 16, 30, 0, 0, offset)
	if got := codec.ToWire(abs); got != "2026-06-10T14:30:00Z" {
		t.Errorf("ToWire = %q, want %q", got, "2026-06-10T14:30:00Z")
	}
}

func TestWireZeroAndEmpty(t *testing.T) {
	codec := New(time.UTC)

	if got := codec.ToWire(time.Time{}); got != "" {
		t.Errorf("ToWire(zero) = %q, want \"\"", got)
	}
	abs, err := codec.FromWire("")
	if err != nil {
		t.Fatalf("FromWire(\"\") error: %v", err)
	}
	if !abs.IsZero() {
		t.Errorf("FromWire(\"\") = %v, want zero time", abs)
	}
}

func TestFromWireInvalidInput(t *testing.T) {
	codec := New(time.UTC)

	for _, value := range []string{"not a time", "2026-06-10T14:30", "2026-06-10"} {
		if _, err := codec.FromWire(value); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("FromWire(%q) error = %v, want ErrInvalidInput", value, err)
		}
	}
}
