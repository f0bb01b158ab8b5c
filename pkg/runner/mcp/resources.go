package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerBoardResource(srv, svc)
	registerStatsResource(srv, svc)
	registerCatalogResource(srv, svc)
	registerEventTemplate(srv, svc)
}

func registerBoardResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"trip://events",
		"Trip Board",
		mcp.WithResourceDescription("Every trip event grouped by day."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		days, err := svc.ListEvents(ctx, "", "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerStatsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"trip://stats",
		"Trip Statistics",
		mcp.WithResourceDescription("Route, dates, cost and per-type statistics of the trip."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		r, err := svc.Report(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, r)
	})
}

func registerCatalogResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"trip://catalog",
		"Catalog",
		mcp.WithResourceDescription("Known destinations, event types and offers."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		catalog, err := svc.Catalog(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, catalog)
	})
}

func registerEventTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"trip://events/{id}",
		"Event Details",
		mcp.WithTemplateDescription("Detailed information about a single trip event."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("event id is required")
		}

		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"event": dto,
		})
	})
}

// templateArg unwraps a URI template variable, which may arrive as a string
// or a one-element list.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
