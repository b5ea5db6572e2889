// Package mcp provides the Model Context Protocol (MCP) server for
// filegate using mcp-go.
//
// This package implements an MCP server that allows AI assistants to
// read, write, edit, move and inspect files through a standardized
// protocol. Every tool operates strictly inside the allowed
// directories configured at startup.
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go).
// Tools are registered with typed argument schemas; handlers bind the
// request arguments, delegate to the filemanager package and render
// plain-text results.
//
// # Security
//
// Security is handled through the underlying sandbox and filemanager
// packages:
//   - Every requested path is normalized and checked for containment
//   - Symlinks are resolved and their targets re-checked
//   - Operations outside the allowed directories fail with an access
//     denied error rather than touching the filesystem
//
// # Usage
//
// The MCP server is typically started as a subprocess by AI assistants
// that support MCP integration. It can also be started manually for
// testing:
//
//	filegate serve /path/to/allowed/dir
//
// The server reads JSON-RPC requests from stdin and writes responses
// to stdout until it receives EOF or is terminated. Logging goes to
// stderr or a debug file so that stdout stays clean for the protocol.
//
// # Architecture
//
// The Server struct contains:
//   - config: Application configuration with the allowed directories
//   - logger: Application logger for debugging and audit
//   - fileManager: Sandboxed file operations behind the tools
//   - mcpServer: The underlying mcp-go server instance
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
