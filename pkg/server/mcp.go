package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mikeboe/guia-procesos/pkg/search"
)

type SearchProcessArgs struct {
	Query string `json:"query" jsonschema:"the construction activity, e.g. Muro de contención en concreto reforzado"`
}

type RecentSearchesArgs struct{}

// NewMCPServer exposes the search as MCP tools. Each MCP session is
// bound to its own controller through the session id.
func NewMCPServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "guia-procesos-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_construction_process",
		Description: "Describe a construction process with steps, materials and applicable Colombian norms, citing web sources.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchProcessArgs) (*mcp.CallToolResult, any, error) {
		st, err := sessionController(svc, req).RunSearch(ctx, args.Query)
		if errors.Is(err, search.ErrEmptyQuery) || errors.Is(err, search.ErrSearchInFlight) {
			return nil, nil, err
		}
		if err != nil {
			return nil, nil, fmt.Errorf("search failed: %w", err)
		}
		if st.Error != "" {
			return nil, nil, errors.New(st.Error)
		}
		return textResult(formatResult(st)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recent_searches",
		Description: "List the most recent distinct queries of this session.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ RecentSearchesArgs) (*mcp.CallToolResult, any, error) {
		history := sessionController(svc, req).Snapshot().History
		if len(history) == 0 {
			return textResult("No hay búsquedas recientes."), nil, nil
		}
		return textResult(strings.Join(history, "\n")), nil, nil
	})

	return server
}

// NewMCPHandler serves the MCP server over the streamable HTTP transport.
func NewMCPHandler(svc *Service) http.Handler {
	server := NewMCPServer(svc)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

func sessionController(svc *Service, req *mcp.CallToolRequest) *search.Controller {
	id := ""
	if req.Session != nil {
		id = req.Session.ID()
	}
	return svc.Session("mcp:" + id)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func formatResult(st search.State) string {
	var sb strings.Builder
	sb.WriteString(st.Result.Text)
	if st.ImageError != "" {
		sb.WriteString("\n\n> " + st.ImageError)
	}
	if len(st.Result.Sources) > 0 {
		sb.WriteString("\n\n## Fuentes Consultadas\n")
		for _, s := range st.Result.Sources {
			sb.WriteString(fmt.Sprintf("- [%s](%s)\n", s.Label(), s.URI))
		}
	}
	return sb.String()
}
