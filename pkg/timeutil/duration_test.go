package timeutil

import (
	"testing"
	"time"
)

func TestParseSpanDefault(t *testing.T) {
	dur, err := ParseSpan("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != time.Hour {
		t.Fatalf("expected 1h, got %v", dur)
	}
}

func TestParseSpanComposite(t *testing.T) {
	dur, err := ParseSpan("1d2h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 26*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
}

func TestParseSpanInvalid(t *testing.T) {
	for _, input := range []string{"abc", "3 fortnights", "2h?"} {
		if _, err := ParseSpan(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                               "00M",
		10 * time.Minute:                "10M",
		2 * time.Hour:                   "02H 00M",
		26*time.Hour + 30*time.Minute:   "01D 02H 30M",
		12*24*time.Hour + 5*time.Minute: "12D 00H 05M",
		90*time.Second:                  "01M",
		-time.Hour:                      "00M",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}
