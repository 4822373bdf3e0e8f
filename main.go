// Package main runs the WhatsApp Green API MCP server.
//
// By default the server speaks MCP over stdio. The http command serves the
// same tools as JSON endpoints instead.
// @title WhatsApp Green API MCP
// @version 1.0
// @description WhatsApp tools backed by the Green API gateway
// @BasePath /
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"whatsapp-greenapi-mcp/config"
	"whatsapp-greenapi-mcp/handlers"
	whatsappmcp "whatsapp-greenapi-mcp/mcp"
	"whatsapp-greenapi-mcp/tools"
	"whatsapp-greenapi-mcp/utils"
	"whatsapp-greenapi-mcp/whatsapp"
)

const shutdownTimeout = 30 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "whatsapp-mcp",
		Short:         "WhatsApp MCP server backed by Green API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runStdio,
	}

	root.AddCommand(stdioCmd())
	root.AddCommand(httpCmd())
	root.AddCommand(toolsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func stdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin and stdout",
		RunE:  runStdio,
	}
}

func httpCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the tools as HTTP endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTTP(port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default: $PORT or 8080)")
	return cmd
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalogue as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tools.ToolsResponse{Tools: tools.GetTools()})
		},
	}
}

// setup loads configuration and builds the one gateway client shared by
// every tool
func setup() (*config.Config, *utils.Logger, *whatsappmcp.WhatsAppMCPServer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	level := utils.ParseLogLevel(cfg.LogLevel)
	logger := utils.NewLogger(level, cfg.ConsoleLogs())
	logger.Debug("configuration loaded", map[string]interface{}{
		"api_url":   cfg.APIURL,
		"timeout":   cfg.Timeout.String(),
		"log_level": level.String(),
	})

	client, err := whatsapp.NewClient(whatsapp.Options{
		APIURL:     cfg.APIURL,
		InstanceID: cfg.InstanceID,
		APIToken:   cfg.APIToken,
		Timeout:    cfg.Timeout,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create Green API client: %w", err)
	}

	toolbox := tools.NewToolbox(client, logger)
	return cfg, logger, whatsappmcp.NewWhatsAppMCPServer(toolbox), nil
}

func runStdio(cmd *cobra.Command, args []string) error {
	_, logger, mcpServer, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving MCP over stdio")
	if err := mcpServer.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	logger.Info("stdio transport closed")
	return nil
}

func runHTTP(port string) error {
	cfg, logger, mcpServer, err := setup()
	if err != nil {
		return err
	}
	if port == "" {
		port = cfg.Port
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", handlers.HandleHealth).Methods("GET")
	router.HandleFunc("/tools", handlers.HandleListTools).Methods("GET")
	router.HandleFunc("/tools/{tool_name}/execute", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleExecuteTool(w, r, mcpServer)
	}).Methods("POST")

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", map[string]interface{}{
			"port":      port,
			"endpoints": []string{"GET /health", "GET /tools", "POST /tools/{tool_name}/execute"},
		})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
