package mcp

import (
	"fmt"

	"filegate/internal/config"
	"filegate/internal/filemanager"
	"filegate/internal/logging"
	"filegate/internal/sandbox"

	"github.com/mark3labs/mcp-go/server"
)

const serverName = "filegate"

// Server represents an MCP server instance using mcp-go
type Server struct {
	config      *config.Config
	logger      *logging.AppLogger
	version     string
	fileManager *filemanager.FileManager
	mcpServer   *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger *logging.AppLogger, version string) *Server {
	return &Server{
		config:  cfg,
		logger:  logger,
		version: version,
	}
}

// Start initializes the sandbox and serves MCP requests over stdio
// until the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	if err := s.initializeComponents(); err != nil {
		return err
	}

	for _, dir := range s.fileManager.ListAllowedDirectories() {
		s.logger.Info("Allowed directory", "path", dir)
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		s.version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the MCP server
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// The mcp-go server will handle cleanup when context is cancelled
	return nil
}

// initializeComponents builds the sandbox roots and the file manager
// without starting the stdio transport.
func (s *Server) initializeComponents() error {
	roots, err := sandbox.NewRoots(s.config.AllowedDirectories)
	if err != nil {
		return fmt.Errorf("failed to initialize sandbox: %w", err)
	}
	s.fileManager = filemanager.NewFileManager(roots, s.logger)
	return nil
}
