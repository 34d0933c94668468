// This file is part of Retroprof.
//
// Retroprof is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroprof is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroprof.  If not, see <https://www.gnu.org/licenses/>.

package mcpserve

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/flame"
	"github.com/jetsetilly/retroprof/logger"
	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/symbols"
	"github.com/jetsetilly/retroprof/version"
)

// defaults for optional tool arguments
const (
	defaultTopN     = 10
	defaultMaxDepth = 5
)

// Profile is the information served about a profile.
type Profile struct {
	// name of the profile. usually the samples filename
	Name string

	Tree *profiling.Tree
}

// Server is an MCP server for a profile.
type Server struct {
	mcp *server.MCPServer

	crit    sync.Mutex
	profile Profile
	layout  *flame.Layout
	fns     []profiling.FunctionStats

	// the handler for each tool by name
	handlers map[string]server.ToolHandlerFunc
}

// New is the preferred method of initialisation for the Server type. The
// layout assigns the graph IDs reported by the search tool. If it is nil a
// layout with the default classifier is used.
func New(profile Profile, layout *flame.Layout) *Server {
	if layout == nil {
		layout = flame.NewLayout(nil)
	}

	v, _, _ := version.Version()

	srv := &Server{
		mcp: server.NewMCPServer(
			strings.ToLower(version.ApplicationName),
			v,
			server.WithToolCapabilities(false),
			server.WithLogging(),
		),
		layout:   layout,
		handlers: make(map[string]server.ToolHandlerFunc),
	}

	srv.addTool(mcp.NewTool("summary",
		mcp.WithDescription("Summary of the profile: total weight, number of call tree nodes, number of functions and the weight that could not be attributed to a function."),
	), srv.summary)

	srv.addTool(mcp.NewTool("top_functions",
		mcp.WithDescription("The functions with the greatest self weight. Self weight is the weight of the samples taken in the function itself, excluding the functions it calls."),
		mcp.WithNumber("top_n",
			mcp.Description(fmt.Sprintf("Number of functions to list (default: %d)", defaultTopN)),
		),
	), srv.topFunctions)

	srv.addTool(mcp.NewTool("call_tree",
		mcp.WithDescription("The call tree, one node per line, indented by depth. Each line shows the function name, the inclusive weight and, in brackets, the exclusive weight."),
		mcp.WithNumber("max_depth",
			mcp.Description(fmt.Sprintf("Deepest level of the tree to show. The root is level 0 (default: %d)", defaultMaxDepth)),
		),
	), srv.callTree)

	srv.addTool(mcp.NewTool("search",
		mcp.WithDescription("Find functions whose name contains the text. Matching is not case sensitive. The graph ID identifies the function in the flame graph."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
	), srv.search)

	srv.Set(profile)

	return srv
}

func (srv *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	srv.handlers[tool.Name] = handler
	srv.mcp.AddTool(tool, handler)
}

// Set replaces the profile being served. It is safe to call while the server
// is running.
func (srv *Server) Set(profile Profile) {
	srv.crit.Lock()
	defer srv.crit.Unlock()

	srv.profile = profile
	srv.fns = nil
	if profile.Tree != nil {
		// laying out the tree assigns graph IDs to the functions
		_ = srv.layout.Boxes(profile.Tree)
		srv.fns = profile.Tree.Functions()
	}

	logger.Logf(logger.Allow, "mcpserve", "serving %s", profile.Name)
}

// Call a tool by name. Used to query the server without a client.
func (srv *Server) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := srv.handlers[name]
	if !ok {
		return nil, curated.Errorf("mcpserve: unknown tool (%s)", name)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	return handler(ctx, req)
}

// Tools returns the names of the tools provided by the server.
func (srv *Server) Tools() []string {
	names := make([]string, 0, len(srv.handlers))
	for n := range srv.handlers {
		names = append(names, n)
	}
	return names
}

// ServeStdio serves requests on stdin and stdout until stdin is closed.
func (srv *Server) ServeStdio() error {
	logger.Log(logger.Allow, "mcpserve", "serving on stdio")
	err := server.ServeStdio(srv.mcp)
	if err != nil {
		return curated.Errorf("mcpserve: %v", err)
	}
	return nil
}

// noProfile is returned by every tool if no profile has been set.
func noProfile() *mcp.CallToolResult {
	return mcp.NewToolResultError("no profile has been loaded")
}

func (srv *Server) summary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	srv.crit.Lock()
	defer srv.crit.Unlock()

	t := srv.profile.Tree
	if t == nil {
		return noProfile(), nil
	}

	var unresolved uint64
	for _, fs := range srv.fns {
		if fs.Symbol.Key() == symbols.Unresolved.Key() {
			unresolved = fs.Total
		}
	}

	var sb strings.Builder
	if srv.profile.Name != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", srv.profile.Name))
	}
	sb.WriteString(fmt.Sprintf("Total weight: %d\n", t.Total()))
	sb.WriteString(fmt.Sprintf("Call tree nodes: %d\n", len(t.Nodes)))
	sb.WriteString(fmt.Sprintf("Maximum depth: %d\n", t.MaxDepth()))
	sb.WriteString(fmt.Sprintf("Functions: %d\n", len(srv.fns)))
	sb.WriteString(fmt.Sprintf("Unresolved weight: %d (%.2f%%)\n", unresolved, percent(unresolved, t.Total())))

	return mcp.NewToolResultText(sb.String()), nil
}

func (srv *Server) topFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topN := int(request.GetFloat("top_n", defaultTopN))
	if topN < 1 {
		return mcp.NewToolResultError("top_n must be at least 1"), nil
	}

	srv.crit.Lock()
	defer srv.crit.Unlock()

	t := srv.profile.Tree
	if t == nil {
		return noProfile(), nil
	}

	fns := srv.fns
	if topN < len(fns) {
		fns = fns[:topN]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Top %d functions by self weight:\n\n", len(fns)))
	for i, fs := range fns {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, fs.Symbol.Name))
		if fs.Symbol.File != "" {
			sb.WriteString(fmt.Sprintf("   Location: %s:%d\n", fs.Symbol.File, fs.Symbol.Line))
		}
		sb.WriteString(fmt.Sprintf("   Self: %d (%.2f%%)\n", fs.Self, fs.SelfPercent(t.Total())))
		sb.WriteString(fmt.Sprintf("   Total: %d (%.2f%%)\n", fs.Total, fs.TotalPercent(t.Total())))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (srv *Server) callTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxDepth := int(request.GetFloat("max_depth", defaultMaxDepth))
	if maxDepth < 0 {
		return mcp.NewToolResultError("max_depth must not be negative"), nil
	}

	srv.crit.Lock()
	defer srv.crit.Unlock()

	t := srv.profile.Tree
	if t == nil {
		return noProfile(), nil
	}

	var sb strings.Builder
	t.Dump(&sb, maxDepth)
	if maxDepth < t.MaxDepth() {
		sb.WriteString(fmt.Sprintf("(tree truncated at depth %d of %d)\n", maxDepth, t.MaxDepth()))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (srv *Server) search(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("search text is empty"), nil
	}

	srv.crit.Lock()
	defer srv.crit.Unlock()

	t := srv.profile.Tree
	if t == nil {
		return noProfile(), nil
	}

	stats := make(map[string]profiling.FunctionStats, len(srv.fns))
	for _, fs := range srv.fns {
		stats[fs.Symbol.Key()] = fs
	}

	var sb strings.Builder
	var found int
	for _, id := range srv.layout.Search(text) {
		sym := srv.layout.Symbol(id)

		// the layout may know of functions from an earlier profile
		fs, ok := stats[sym.Key()]
		if !ok {
			continue
		}
		found++

		sb.WriteString(fmt.Sprintf("%s (graph id %d)\n", sym.Name, id))
		if sym.File != "" {
			sb.WriteString(fmt.Sprintf("   Location: %s:%d\n", sym.File, sym.Line))
		}
		sb.WriteString(fmt.Sprintf("   Self: %d (%.2f%%)\n", fs.Self, fs.SelfPercent(t.Total())))
		sb.WriteString(fmt.Sprintf("   Total: %d (%.2f%%)\n", fs.Total, fs.TotalPercent(t.Total())))
		sb.WriteString(fmt.Sprintf("   Call paths: %d\n", fs.Paths))
	}

	if found == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No functions match %q\n", text)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%d functions match %q:\n\n%s", found, text, sb.String())), nil
}

func percent(v uint64, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(v) / float64(total) * 100
}
