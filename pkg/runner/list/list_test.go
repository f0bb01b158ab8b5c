package list

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/printers"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/viewmodel"
)

var now = time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)

func newService() *app.Service {
	return &app.Service{
		Persistence: store.NewMemory(store.DemoEvents(now)...),
		Loc:         time.UTC,
		Now:         func() time.Time { return now },
	}
}

func TestListPrettyGroupsByDay(t *testing.T) {
	var out bytes.Buffer
	l := List{Service: newService(), Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	for _, want := range []string{"1  MAR 18", "2  MAR 19", "3  MAR 20", "Flight to Amsterdam", "+ Add luggage € 30"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestListJSONFlatSort(t *testing.T) {
	var out bytes.Buffer
	l := List{
		Service: newService(),
		Sort:    viewmodel.SortPrice,
		Format:  printers.FormatJSON,
		Out:     &out,
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	var events []struct {
		Type      string `json:"type"`
		BasePrice int    `json:"base_price"`
	}
	if err := json.Unmarshal(out.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	if events[0].BasePrice != 160 {
		t.Fatalf("expected most expensive first, got %+v", events[0])
	}
}

func TestListEmptyFilterEncodesEmptyList(t *testing.T) {
	var out bytes.Buffer
	l := List{
		Service: newService(),
		Filter:  model.FilterPast,
		Format:  printers.FormatJSON,
		Out:     &out,
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Fatalf("expected empty list, got %q", out.String())
	}
}

func TestListWithoutService(t *testing.T) {
	l := List{}
	if err := l.Do(context.Background()); err == nil {
		t.Fatalf("expected error without service")
	}
}
