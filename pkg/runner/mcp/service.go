// Package mcp provides the Model Context Protocol server integration for trip.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/timeutil"
	"tableflip.dev/trip/pkg/viewmodel"
)

// Service adapts app.Service to transport-friendly DTOs for the MCP server.
type Service struct {
	App *app.Service
}

// ErrNoService is returned when the server was built without a backing service.
var ErrNoService = errors.New("mcp: service is not configured")

// OfferDTO is an offer together with whether the event selected it.
type OfferDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Price   int    `json:"price"`
	Checked bool   `json:"checked"`
}

// EventDTO is a transport-friendly projection of a trip event.
type EventDTO struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Label       string     `json:"label"`
	Emoji       string     `json:"emoji"`
	IsTransfer  bool       `json:"isTransfer"`
	Destination string     `json:"destination"`
	StartISO    string     `json:"start"`
	EndISO      string     `json:"end"`
	StartUnix   int64      `json:"startUnix"`
	EndUnix     int64      `json:"endUnix"`
	Duration    string     `json:"duration"`
	BasePrice   int        `json:"basePrice"`
	TotalPrice  int        `json:"totalPrice"`
	Offers      []OfferDTO `json:"offers,omitempty"`
	IsFavourite bool       `json:"isFavorite"`
}

// DayDTO is one day section of the board.
type DayDTO struct {
	Counter int        `json:"counter"`
	Date    string     `json:"date,omitempty"`
	Events  []EventDTO `json:"events"`
}

// EventFields carries the optional attributes accepted by create and update.
type EventFields struct {
	Type        string
	Destination string
	Start       string
	End         string
	BasePrice   *int
	Offers      []string
	Favourite   *bool
}

// NewService builds a service wrapper using the provided application service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListEvents returns the board for filter and sort as day sections.
func (s *Service) ListEvents(ctx context.Context, filter, sort string) ([]DayDTO, error) {
	if s.App == nil {
		return nil, ErrNoService
	}
	f, err := model.ParseFilterType(filter)
	if err != nil {
		return nil, err
	}
	st, err := viewmodel.ParseSortType(sort)
	if err != nil {
		return nil, err
	}
	layout, err := s.App.Board(ctx, f, st)
	if err != nil {
		return nil, err
	}
	days := make([]DayDTO, 0, len(layout.Days))
	for _, d := range layout.Days {
		day := DayDTO{Counter: d.Counter, Events: toDTOs(d.Events)}
		if layout.Grouped {
			day.Date = d.Date.Format("2006-01-02")
		}
		days = append(days, day)
	}
	return days, nil
}

// EventByID locates an event by id.
func (s *Service) EventByID(ctx context.Context, id string) (*EventDTO, error) {
	if s.App == nil {
		return nil, ErrNoService
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	e, err := s.App.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// CreateEvent persists a new event. Type, destination and start are required.
func (s *Service) CreateEvent(ctx context.Context, f EventFields) (*EventDTO, error) {
	if s.App == nil {
		return nil, ErrNoService
	}
	if strings.TrimSpace(f.Type) == "" || strings.TrimSpace(f.Destination) == "" {
		return nil, errors.New("type and destination are required")
	}
	req := app.EventRequest{
		Type:        f.Type,
		Destination: f.Destination,
		Offers:      f.Offers,
	}
	if f.BasePrice != nil {
		req.BasePrice = *f.BasePrice
	}
	if f.Favourite != nil {
		req.Favourite = *f.Favourite
	}
	if err := applyTimes(&req, f.Start, f.End); err != nil {
		return nil, err
	}
	if req.Start.IsZero() {
		return nil, errors.New("start is required")
	}
	e, err := s.App.Add(ctx, req)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// UpdateEvent rewrites the fields of f that are set, keeping the rest.
func (s *Service) UpdateEvent(ctx context.Context, id string, f EventFields) (*EventDTO, error) {
	if s.App == nil {
		return nil, ErrNoService
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	current, err := s.App.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req := app.EventRequest{
		Type:        string(current.Type),
		Destination: current.Destination.Name,
		Start:       current.Start.Time,
		End:         current.End.Time,
		BasePrice:   current.BasePrice,
		Favourite:   current.IsFavourite,
	}
	for _, o := range current.CheckedOffers {
		req.Offers = append(req.Offers, o.ID)
	}
	if f.Type != "" && f.Type != req.Type {
		req.Type = f.Type
		// Offers belong to a type; switching type clears the selection.
		req.Offers = nil
	}
	if f.Destination != "" {
		req.Destination = f.Destination
	}
	if f.BasePrice != nil {
		req.BasePrice = *f.BasePrice
	}
	if f.Offers != nil {
		req.Offers = f.Offers
	}
	if f.Favourite != nil {
		req.Favourite = *f.Favourite
	}
	if err := applyTimes(&req, f.Start, f.End); err != nil {
		return nil, err
	}

	e, err := s.App.Replace(ctx, id, req)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// ToggleFavourite flips the favourite flag.
func (s *Service) ToggleFavourite(ctx context.Context, id string) (*EventDTO, error) {
	if s.App == nil {
		return nil, ErrNoService
	}
	e, err := s.App.ToggleFavourite(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// DeleteEvent removes the event permanently.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if s.App == nil {
		return ErrNoService
	}
	if id == "" {
		return errors.New("id is required")
	}
	return s.App.Delete(ctx, id)
}

// Report returns the trip header and statistics.
func (s *Service) Report(ctx context.Context) (app.Report, error) {
	if s.App == nil {
		return app.Report{}, ErrNoService
	}
	return s.App.Report(ctx)
}

// Catalog lists destinations and the offers of every type.
func (s *Service) Catalog(ctx context.Context) (map[string]any, error) {
	if s.App == nil {
		return nil, ErrNoService
	}
	destinations, offers, err := s.App.Catalogs(ctx)
	if err != nil {
		return nil, err
	}
	byType := make(map[string][]event.Offer)
	for _, t := range event.AllTypes() {
		if list := offers.For(t); len(list) > 0 {
			byType[string(t)] = list
		}
	}
	return map[string]any{
		"destinations": destinations.Names(),
		"types":        typeNames(),
		"offers":       byType,
	}, nil
}

// applyTimes parses start and end into req. An end of the form "+2h" is
// taken relative to the start.
func applyTimes(req *app.EventRequest, start, end string) error {
	if v := strings.TrimSpace(start); v != "" {
		t, err := event.ParseTime(v)
		if err != nil {
			return fmt.Errorf("invalid start value: %w", err)
		}
		req.Start = t
	}
	v := strings.TrimSpace(end)
	switch {
	case strings.HasPrefix(v, "+"):
		span, err := timeutil.ParseSpan(strings.TrimPrefix(v, "+"))
		if err != nil {
			return fmt.Errorf("invalid end value: %w", err)
		}
		req.End = req.Start.Add(span)
	case v != "":
		t, err := event.ParseTime(v)
		if err != nil {
			return fmt.Errorf("invalid end value: %w", err)
		}
		req.End = t
	case req.End.IsZero() && !req.Start.IsZero():
		req.End = req.Start.Add(time.Hour)
	}
	return nil
}

func typeNames() []string {
	types := event.AllTypes()
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func toDTOs(events []*event.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *event.Event) EventDTO {
	dto := EventDTO{
		ID:          e.ID,
		Type:        string(e.Type),
		Label:       e.Type.Label(),
		Emoji:       e.Type.Emoji(),
		IsTransfer:  e.Type.IsTransfer(),
		Destination: e.Destination.Name,
		StartISO:    e.Start.UTC().Format(time.RFC3339),
		EndISO:      e.End.UTC().Format(time.RFC3339),
		StartUnix:   e.Start.Unix(),
		EndUnix:     e.End.Unix(),
		Duration:    timeutil.FormatDuration(e.Duration()),
		BasePrice:   e.BasePrice,
		TotalPrice:  e.TotalPrice(),
		IsFavourite: e.IsFavourite,
	}
	for _, o := range e.Offers {
		dto.Offers = append(dto.Offers, OfferDTO{
			ID:      o.ID,
			Title:   o.Title,
			Price:   o.Price,
			Checked: e.IsChecked(o.ID),
		})
	}
	return dto
}
