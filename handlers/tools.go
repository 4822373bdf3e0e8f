package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	whatsappmcp "whatsapp-greenapi-mcp/mcp"
	"whatsapp-greenapi-mcp/tools"
)

// ToolExecutor runs a named tool. *mcp.WhatsAppMCPServer implements it.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, params map[string]interface{}) (string, bool)
	HasTool(name string) bool
}

var _ ToolExecutor = (*whatsappmcp.WhatsAppMCPServer)(nil)

// ExecuteToolRequest represents a request to execute a specific MCP tool
type ExecuteToolRequest struct {
	Parameters map[string]interface{} `json:"parameters"`
}

// ExecuteToolResponse represents the response from tool execution
type ExecuteToolResponse struct {
	Success  bool   `json:"success" example:"true"`
	ToolName string `json:"tool_name" example:"send_message"`
	Result   string `json:"result" example:"Message sent to Alice."`
}

// HandleListTools returns the tool catalogue
// @Summary List MCP tools
// @Tags API
// @Produce json
// @Success 200 {object} tools.ToolsResponse "Available tools"
// @Router /tools [get]
func HandleListTools(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tools.ToolsResponse{Tools: tools.GetTools()})
}

// HandleExecuteTool handles dynamic tool execution requests
// @Summary Execute a specific MCP tool
// @Description Execute any available MCP tool with the provided parameters
// @Tags API
// @Accept json
// @Produce json
// @Param tool_name path string true "Name of the tool to execute"
// @Param request body ExecuteToolRequest true "Tool execution request"
// @Success 200 {object} ExecuteToolResponse "Tool execution result"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 404 {object} map[string]string "Tool not found"
// @Router /tools/{tool_name}/execute [post]
func HandleExecuteTool(w http.ResponseWriter, r *http.Request, executor ToolExecutor) {
	toolName := mux.Vars(r)["tool_name"]

	if !executor.HasTool(toolName) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Tool '%s' not found", toolName))
		return
	}

	var req ExecuteToolRequest
	// an empty body means no parameters
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, _ := executor.Execute(r.Context(), toolName, req.Parameters)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExecuteToolResponse{
		Success:  !tools.IsFailure(result),
		ToolName: toolName,
		Result:   result,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
