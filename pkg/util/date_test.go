package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
	if got := ParseTimeDefault("not-a-time", def); !got.Equal(def) {
		t.Fatalf("expected default for garbage input, got %v", got)
	}
}

func TestAlignFromTo(t *testing.T) {
	from := time.Date(2024, 10, 10, 10, 7, 33, 0, time.UTC)
	to := time.Date(2024, 10, 10, 11, 59, 59, 0, time.UTC)

	af, at := AlignFromTo(from, to, "15m")
	if af.Minute() != 0 || at.Minute() != 45 {
		t.Fatalf("unexpected 15m alignment %v %v", af, at)
	}

	af, at = AlignFromTo(from, to, "1h")
	if af.Minute() != 0 || at.Minute() != 0 || at.Hour() != 11 {
		t.Fatalf("unexpected 1h alignment %v %v", af, at)
	}

	af, _ = AlignFromTo(from, to, "1d")
	if af.Hour() != 0 || af.Minute() != 0 {
		t.Fatalf("unexpected 1d alignment %v", af)
	}
}
