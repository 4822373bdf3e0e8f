package mcp

import (
	"context"
	"fmt"

	"github.com/fredcamaral/gomcp-sdk"
	"github.com/fredcamaral/gomcp-sdk/protocol"
	"github.com/fredcamaral/gomcp-sdk/server"
	"github.com/fredcamaral/gomcp-sdk/transport"

	"whatsapp-greenapi-mcp/tools"
)

const (
	serverName    = "whatsapp-greenapi-mcp"
	serverVersion = "1.0.0"
)

// WhatsAppMCPServer exposes the toolbox over MCP
type WhatsAppMCPServer struct {
	toolbox *tools.Toolbox
	server  *server.Server
}

// NewWhatsAppMCPServer creates a new MCP server instance
func NewWhatsAppMCPServer(toolbox *tools.Toolbox) *WhatsAppMCPServer {
	server := mcp.NewServer(serverName, serverVersion)

	mcpServer := &WhatsAppMCPServer{
		toolbox: toolbox,
		server:  server,
	}

	mcpServer.registerTools()
	mcpServer.registerResources()

	return mcpServer
}

// registerTools registers every catalogue entry with a handler that
// dispatches into the toolbox
func (s *WhatsAppMCPServer) registerTools() {
	for _, t := range tools.GetTools() {
		tool := mcp.NewTool(
			t.Name,
			t.Description,
			mcp.ObjectSchema(t.Description, t.Properties(), t.Required()),
		)
		s.server.AddTool(tool, mcp.ToolHandlerFunc(s.handler(t.Name)))
	}
}

// handler returns the tool text as the result. Failures are part of the
// text, so the error is only set for a tool missing from the toolbox.
func (s *WhatsAppMCPServer) handler(name string) func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		text, ok := s.toolbox.Execute(ctx, name, args)
		if !ok {
			return nil, fmt.Errorf("tool '%s' not found", name)
		}
		return text, nil
	}
}

// registerResources registers MCP resources
func (s *WhatsAppMCPServer) registerResources() {
	contactsResource := mcp.NewResource("whatsapp://contacts", "contacts", "WhatsApp contacts and groups", "text/plain")
	s.server.AddResource(contactsResource, mcp.ResourceHandlerFunc(s.getContactsResource))

	statusResource := mcp.NewResource("whatsapp://account", "account", "WhatsApp account status", "text/plain")
	s.server.AddResource(statusResource, mcp.ResourceHandlerFunc(s.getAccountResource))
}

func (s *WhatsAppMCPServer) getContactsResource(ctx context.Context, uri string) ([]protocol.Content, error) {
	return s.textResource(ctx, "get_chats")
}

func (s *WhatsAppMCPServer) getAccountResource(ctx context.Context, uri string) ([]protocol.Content, error) {
	return s.textResource(ctx, "get_account_status")
}

func (s *WhatsAppMCPServer) textResource(ctx context.Context, toolName string) ([]protocol.Content, error) {
	text, _ := s.toolbox.Execute(ctx, toolName, nil)
	if tools.IsFailure(text) {
		return nil, fmt.Errorf("failed to read resource: %s", text)
	}
	return []protocol.Content{{Type: "text", Text: text}}, nil
}

// Execute runs a tool by name. ok is false when no such tool exists.
func (s *WhatsAppMCPServer) Execute(ctx context.Context, name string, params map[string]interface{}) (string, bool) {
	return s.toolbox.Execute(ctx, name, params)
}

// HasTool reports whether name is a registered tool
func (s *WhatsAppMCPServer) HasTool(name string) bool {
	return s.toolbox.Has(name)
}

// ServeStdio serves MCP over stdin and stdout until ctx is done
func (s *WhatsAppMCPServer) ServeStdio(ctx context.Context) error {
	return transport.NewStdioTransport().Start(ctx, s.server)
}
