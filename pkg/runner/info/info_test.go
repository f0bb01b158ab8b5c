package info

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/store"
)

func TestInfoPrintsConfigAndSummary(t *testing.T) {
	t.Setenv("TRIP_CONFIG_PATH", "")
	now := time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)
	svc := &app.Service{
		Persistence: store.NewMemory(store.DemoEvents(now)...),
		Loc:         time.UTC,
		Now:         func() time.Time { return now },
	}
	var out bytes.Buffer
	i := Info{
		Config:  &store.Settings{Path: "/tmp/trip.db", Location: "UTC"},
		Service: svc,
		Out:     &out,
	}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"TRIP_CONFIG_PATH env var not set",
		"Config.path: /tmp/trip.db",
		"Events: 6",
		"Destinations: 4",
		"Trip: Amsterdam — Geneva — Chamonix",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestInfoEmptyStore(t *testing.T) {
	var out bytes.Buffer
	i := Info{
		Config:  &store.Settings{Path: "/tmp/trip.db"},
		Service: &app.Service{Persistence: store.NewMemory()},
		Out:     &out,
	}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	if strings.Contains(out.String(), "Trip:") {
		t.Fatalf("expected no trip line for an empty store:\n%s", out.String())
	}
}

func TestInfoWithoutService(t *testing.T) {
	i := Info{Config: &store.Settings{Path: "/tmp/trip.db"}, Out: &bytes.Buffer{}}
	if err := i.Do(context.Background()); err == nil {
		t.Fatalf("expected error without service")
	}
}
