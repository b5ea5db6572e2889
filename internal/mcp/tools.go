package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"filegate/internal/filemanager"
)

// batchSeparator sits between per-file sections in multi-file output.
const batchSeparator = "\n---\n"

type readFileArgs struct {
	Path string `json:"path"`
}

type readMultipleFilesArgs struct {
	Paths []string `json:"paths"`
}

type writeFileArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type editFileArgs struct {
	Path   string                      `json:"path"`
	Edits  []filemanager.EditOperation `json:"edits"`
	DryRun bool                        `json:"dryRun"`
}

type createDirectoryArgs struct {
	Path string `json:"path"`
}

type listDirectoryArgs struct {
	Path string `json:"path"`
}

type directoryTreeArgs struct {
	Path string `json:"path"`
}

type moveFileArgs struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type searchFilesArgs struct {
	Path            string   `json:"path"`
	Pattern         string   `json:"pattern"`
	ExcludePatterns []string `json:"excludePatterns"`
}

type getFileInfoArgs struct {
	Path string `json:"path"`
}

// registerTools declares every tool with its argument schema and wires
// up the handlers.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Read the complete contents of a file as UTF-8 text. "+
			"Fails on binary content. Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file to read")),
	), s.handleReadFile)

	s.mcpServer.AddTool(mcp.NewTool("read_multiple_files",
		mcp.WithDescription("Read the contents of multiple files in a single operation. "+
			"Failed reads are reported per file without aborting the others. "+
			"Only works within allowed directories."),
		mcp.WithArray("paths", mcp.Required(),
			mcp.Description("Paths of the files to read"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleReadMultipleFiles)

	s.mcpServer.AddTool(mcp.NewTool("write_file",
		mcp.WithDescription("Create a new file or completely overwrite an existing file. "+
			"The parent directory must already exist. Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the file to write")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Full content to write")),
	), s.handleWriteFile)

	s.mcpServer.AddTool(mcp.NewTool("edit_file",
		mcp.WithDescription("Make selective edits to a text file by replacing exact text matches. "+
			"Edits apply in order and each replaces every occurrence of its search text. "+
			"Returns a diff of the changes. Use dryRun to preview without modifying the file. "+
			"Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the file to edit")),
		mcp.WithArray("edits", mcp.Required(),
			mcp.Description("Edit operations to apply in order"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"searchText":      map[string]any{"type": "string", "description": "Exact text to find"},
					"replacementText": map[string]any{"type": "string", "description": "Text to replace it with"},
				},
				"required": []string{"searchText", "replacementText"},
			}),
		),
		mcp.WithBoolean("dryRun",
			mcp.Description("Preview the diff without modifying the file"),
			mcp.DefaultBool(false),
		),
	), s.handleEditFile)

	s.mcpServer.AddTool(mcp.NewTool("create_directory",
		mcp.WithDescription("Create a new directory, including missing parents. "+
			"Succeeds without change if the directory already exists. "+
			"Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the directory to create")),
	), s.handleCreateDirectory)

	s.mcpServer.AddTool(mcp.NewTool("list_directory",
		mcp.WithDescription("List all files and directories at a path, "+
			"marked with [FILE] and [DIR] prefixes. Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the directory to list")),
	), s.handleListDirectory)

	s.mcpServer.AddTool(mcp.NewTool("directory_tree",
		mcp.WithDescription("Get a recursive tree of files and directories as JSON. "+
			"Each entry has name, type and, for directories, children. Symbolic links "+
			"are listed but not followed. Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Root of the tree")),
	), s.handleDirectoryTree)

	s.mcpServer.AddTool(mcp.NewTool("move_file",
		mcp.WithDescription("Move or rename files and directories in a single operation. "+
			"Both source and destination must be within allowed directories."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Current path")),
		mcp.WithString("destination", mcp.Required(), mcp.Description("New path")),
	), s.handleMoveFile)

	s.mcpServer.AddTool(mcp.NewTool("search_files",
		mcp.WithDescription("Recursively search for entries whose names contain a pattern, "+
			"case-insensitively. Returns full paths of all matches. "+
			"Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Directory to search under")),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Name substring to match")),
		mcp.WithArray("excludePatterns",
			mcp.Description("Glob patterns for entries to skip"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleSearchFiles)

	s.mcpServer.AddTool(mcp.NewTool("get_file_info",
		mcp.WithDescription("Retrieve metadata about a file or directory: size, timestamps, "+
			"type and permissions. Only works within allowed directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to inspect")),
	), s.handleGetFileInfo)

	s.mcpServer.AddTool(mcp.NewTool("list_allowed_directories",
		mcp.WithDescription("List the directories this server is allowed to access."),
	), s.handleListAllowedDirectories)
}

func (s *Server) handleReadFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args readFileArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "read_file", "path", args.Path)

	content, err := s.fileManager.ReadFile(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(content), nil
}

func (s *Server) handleReadMultipleFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args readMultipleFilesArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "read_multiple_files", "count", len(args.Paths))

	outcomes := s.fileManager.ReadMultipleFiles(args.Paths)

	// Sections follow the request order, not map order.
	sections := make([]string, 0, len(args.Paths))
	for _, p := range args.Paths {
		outcome := outcomes[p]
		if outcome.Err != "" {
			sections = append(sections, fmt.Sprintf("%s: Error - %s", p, outcome.Err))
			continue
		}
		sections = append(sections, fmt.Sprintf("%s:\n%s\n", p, outcome.Content))
	}

	return mcp.NewToolResultText(strings.Join(sections, batchSeparator)), nil
}

func (s *Server) handleWriteFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args writeFileArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "write_file", "path", args.Path, "bytes", len(args.Content))

	if err := s.fileManager.WriteFile(args.Path, args.Content); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully wrote to %s", args.Path)), nil
}

func (s *Server) handleEditFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args editFileArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "edit_file", "path", args.Path, "edits", len(args.Edits), "dryRun", args.DryRun)

	diff, err := s.fileManager.EditFile(args.Path, args.Edits, args.DryRun)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.DryRun {
		return mcp.NewToolResultText(diff), nil
	}

	text := fmt.Sprintf("Applied %d edit(s) to %s\n\n%s", len(args.Edits), args.Path, diff)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleCreateDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createDirectoryArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "create_directory", "path", args.Path)

	if err := s.fileManager.CreateDirectory(args.Path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully created directory %s", args.Path)), nil
}

func (s *Server) handleListDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listDirectoryArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "list_directory", "path", args.Path)

	entries, err := s.fileManager.ListDirectory(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir {
			lines = append(lines, fmt.Sprintf("[DIR] %s", entry.Name))
		} else {
			lines = append(lines, fmt.Sprintf("[FILE] %s", entry.Name))
		}
	}

	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) handleDirectoryTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args directoryTreeArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "directory_tree", "path", args.Path)

	tree, err := s.fileManager.DirectoryTree(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rendered, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render tree: %v", err)), nil
	}

	return mcp.NewToolResultText(string(rendered)), nil
}

func (s *Server) handleMoveFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args moveFileArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "move_file", "source", args.Source, "destination", args.Destination)

	if err := s.fileManager.MoveFile(args.Source, args.Destination); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully moved %s to %s", args.Source, args.Destination)), nil
}

func (s *Server) handleSearchFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args searchFilesArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "search_files", "path", args.Path, "pattern", args.Pattern)

	matches, err := s.fileManager.SearchFiles(args.Path, args.Pattern, args.ExcludePatterns)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText("No matches found"), nil
	}

	return mcp.NewToolResultText(strings.Join(matches, "\n")), nil
}

func (s *Server) handleGetFileInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args getFileInfoArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Tool call", "tool", "get_file_info", "path", args.Path)

	attrs, err := s.fileManager.FileInfo(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lines := make([]string, 0, attrs.Len())
	for pair := attrs.Oldest(); pair != nil; pair = pair.Next() {
		lines = append(lines, fmt.Sprintf("%s: %s", pair.Key, pair.Value))
	}

	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) handleListAllowedDirectories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug("Tool call", "tool", "list_allowed_directories")

	dirs := s.fileManager.ListAllowedDirectories()
	return mcp.NewToolResultText("Allowed directories:\n" + strings.Join(dirs, "\n")), nil
}
