package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/viewmodel"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEventsTool(srv, svc)
	registerGetEventTool(srv, svc)
	registerCreateEventTool(srv, svc)
	registerUpdateEventTool(srv, svc)
	registerToggleFavouriteTool(srv, svc)
	registerDeleteEventTool(srv, svc)
	registerTripStatsTool(srv, svc)
	registerCatalogTool(srv, svc)
}

// eventArgs is shared by create_event and update_event.
type eventArgs struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Destination string   `json:"destination"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	BasePrice   *int     `json:"base_price"`
	Offers      []string `json:"offers"`
	Favourite   *bool    `json:"favourite"`
}

func (a eventArgs) fields() EventFields {
	return EventFields{
		Type:        strings.TrimSpace(a.Type),
		Destination: strings.TrimSpace(a.Destination),
		Start:       a.Start,
		End:         a.End,
		BasePrice:   a.BasePrice,
		Offers:      a.Offers,
		Favourite:   a.Favourite,
	}
}

func eventOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("type",
			mcp.Description("Event type."),
			mcp.Enum(typeNames()...),
		),
		mcp.WithString("destination",
			mcp.Description("Destination name, preferably one from the catalog."),
		),
		mcp.WithString("start",
			mcp.Description("RFC3339 timestamp of the start."),
		),
		mcp.WithString("end",
			mcp.Description("RFC3339 timestamp of the end, or a span after the start such as +90m or +2h."),
		),
		mcp.WithNumber("base_price",
			mcp.Description("Base price in whole euros."),
			mcp.Min(0),
		),
		mcp.WithArray("offers",
			mcp.Description("Offer ids to select; they must belong to the event type."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("favourite",
			mcp.Description("Mark the event as a favourite."),
		),
	}
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List trip events grouped by day, optionally filtered and sorted."),
		mcp.WithString("filter",
			mcp.Description("Which events to include."),
			mcp.Enum(string(model.FilterEverything), string(model.FilterFuture), string(model.FilterPast)),
		),
		mcp.WithString("sort",
			mcp.Description("Board ordering; event groups by day."),
			mcp.Enum(string(viewmodel.SortEvent), string(viewmodel.SortTime), string(viewmodel.SortPrice)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := request.GetString("filter", string(model.FilterEverything))
		sort := request.GetString("sort", string(viewmodel.SortEvent))

		days, err := svc.ListEvents(ctx, filter, sort)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		count := 0
		for _, d := range days {
			count += len(d.Events)
		}
		return toJSONResult(map[string]any{
			"filter": filter,
			"sort":   sort,
			"days":   days,
			"count":  count,
		})
	})
}

func registerGetEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_event",
		mcp.WithDescription("Fetch a single trip event by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateEventTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create a new trip event. Type, destination and start are required."),
	}, eventOptions()...)
	tool := mcp.NewTool("create_event", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args eventArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.CreateEvent(ctx, args.fields())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEventTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Update fields of an existing trip event. Omitted fields keep their value."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to modify."),
		),
	}, eventOptions()...)
	tool := mcp.NewTool("update_event", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args eventArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		dto, err := svc.UpdateEvent(ctx, args.ID, args.fields())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleFavouriteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_favourite",
		mcp.WithDescription("Flip the favourite flag of a trip event."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to toggle."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleFavourite(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete a trip event permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEvent(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": true,
		})
	})
}

func registerTripStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"trip_stats",
		mcp.WithDescription("Summarise the trip: route, dates, total cost, and money, transport and time per event type."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := svc.Report(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(r)
	})
}

func registerCatalogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_catalog",
		mcp.WithDescription("List the known destinations, event types and the offers of each type."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		catalog, err := svc.Catalog(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(catalog)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
