// Package main is the entry point for the filegate MCP server.
//
// This package initializes the application, resolves the allowed
// directories, and serves the Model Context Protocol over stdio.
// The application follows this startup sequence:
//
// 1. Initialize logging system (stderr or debug file, never stdout)
// 2. Resolve allowed directories from arguments or saved configuration
// 3. Warn when an allowed directory is a sensitive system location
// 4. Build the sandbox and start the MCP stdio server
// 5. Handle graceful shutdown when the client disconnects
//
// The main function serves as the orchestrator, delegating specific
// functionality to appropriate internal packages while maintaining
// overall application flow and error handling.
package main

import (
	"fmt"
	"os"

	"filegate/internal/config"
	"filegate/internal/logging"
	"filegate/internal/mcp"
	"filegate/internal/sandbox"

	"github.com/spf13/cobra"
)

// Version is the application version reported to MCP clients.
const Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "filegate [directory...]",
	Short: "Sandboxed filesystem access for MCP clients",
	Long: `filegate serves filesystem tools to AI assistants over the Model
Context Protocol. Every operation is confined to the allowed
directories given on the command line or saved in the configuration
file. The server speaks JSON-RPC on stdin/stdout, so it is normally
started as a subprocess by an MCP client.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve [directory...]",
	Short: "Serve MCP requests over stdio",
	Args:  cobra.ArbitraryArgs,
	RunE:  runServe,
}

var initCmd = &cobra.Command{
	Use:   "init <directory>...",
	Short: "Save the allowed directories to the configuration file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInit,
}

var rootsCmd = &cobra.Command{
	Use:   "roots [directory...]",
	Short: "Show the directories the server would allow",
	Args:  cobra.ArbitraryArgs,
	RunE:  runRoots,
}

func init() {
	rootCmd.Version = Version
	rootCmd.AddCommand(serveCmd, initCmd, rootsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.NewAppLogger()

	cfg, err := loadConfig(args, logger)
	if err != nil {
		return err
	}
	warnReservedDirectories(cfg.AllowedDirectories, logger)

	server := mcp.NewServer(cfg, logger, Version)
	if err := server.Start(); err != nil {
		logger.Error("MCP server exited with error", "error", err)
		return err
	}

	return server.Stop()
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewAppLogger()

	// Validate before saving so a typo never lands in the config file.
	roots, err := sandbox.NewRoots(args)
	if err != nil {
		return err
	}
	warnReservedDirectories(roots.List(), logger)

	if err := config.CreateNewConfig(roots.List()); err != nil {
		return err
	}

	path, _ := config.ConfigPath()
	fmt.Printf("Configuration saved to %s\n", path)
	for _, dir := range roots.List() {
		fmt.Printf("  %s\n", dir)
	}
	return nil
}

func runRoots(cmd *cobra.Command, args []string) error {
	logger := logging.NewAppLogger()

	cfg, err := loadConfig(args, logger)
	if err != nil {
		return err
	}

	roots, err := sandbox.NewRoots(cfg.AllowedDirectories)
	if err != nil {
		return err
	}

	fmt.Println("Allowed directories:")
	for _, dir := range roots.List() {
		fmt.Printf("  %s\n", dir)
	}
	return nil
}

// loadConfig resolves the allowed directories from the command line,
// falling back to the saved configuration when no arguments are given.
// Command line directories replace the configured list entirely.
func loadConfig(args []string, logger *logging.AppLogger) (*config.Config, error) {
	if len(args) == 0 {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		configPath, _ := config.ConfigPath()
		logger.Info("Configuration loaded",
			"path", configPath,
			"directories", len(cfg.AllowedDirectories),
		)
		return cfg, nil
	}

	cfg := config.DefaultConfig()
	if loaded, err := config.Load(); err == nil {
		cfg = *loaded
	}
	cfg.AllowedDirectories = cfg.EffectiveDirectories(args)
	return &cfg, nil
}

// warnReservedDirectories logs a warning for every allowed directory
// that points at a sensitive system location.
func warnReservedDirectories(dirs []string, logger *logging.AppLogger) {
	for _, dir := range dirs {
		if sandbox.IsReservedDirectory(dir) {
			logger.Warn("Allowed directory is a sensitive system location", "path", dir)
		}
	}
}
