package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/afar2liu/mcp-mermaid-go/internal/config"
	"github.com/afar2liu/mcp-mermaid-go/internal/fetch"
	"github.com/afar2liu/mcp-mermaid-go/internal/tools"
	"github.com/afar2liu/mcp-mermaid-go/pkg/logger"
)

const (
	serverName    = "mermaid-live-server"
	serverVersion = "0.4.0"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional YAML config file; environment variables override it")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	fetcher := fetch.NewHTTPFetcher(fetch.NewHTTPClient(cfg.Fetch.Timeout), cfg.Fetch.UserAgent)

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil,
	)
	names, err := tools.Register(server, cfg, fetcher)
	if err != nil {
		logger.Fatalf("Failed to register tools: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("Mermaid Live MCP Server running on stdio (live=%s, ink=%s)", cfg.Mermaid.LiveBaseURL, cfg.Mermaid.InkBaseURL)
	logger.Infof("Available tools: %s", strings.Join(names, ", "))

	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil && ctx.Err() == nil {
		logger.Fatalf("Fatal error running server: %v", err)
	}
	logger.Info("server stopped")
}
