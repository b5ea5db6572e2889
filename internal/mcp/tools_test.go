package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filegate/internal/filemanager"
)

// newToolRequest builds a CallToolRequest the way the stdio transport
// would after decoding a tools/call message
func newToolRequest(tool string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args
	return req
}

// textResult extracts the text payload of a tool result
func textResult(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content, "tool result has no content")
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool result content is not text")
	return tc.Text
}

// newReadyServer builds a server with initialized components rooted at
// a fresh temp directory
func newReadyServer(t *testing.T) (*Server, string) {
	t.Helper()
	server, tempDir := createTestServer(t)
	require.NoError(t, server.initializeComponents())
	return server, tempDir
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFileTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	path := writeTempFile(t, tempDir, "hello.txt", "hello from the sandbox")

	t.Run("returns file content", func(t *testing.T) {
		res, err := server.handleReadFile(context.Background(),
			newToolRequest("read_file", map[string]any{"path": path}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Equal(t, "hello from the sandbox", textResult(t, res))
	})

	t.Run("reports missing file as tool error", func(t *testing.T) {
		res, err := server.handleReadFile(context.Background(),
			newToolRequest("read_file", map[string]any{"path": filepath.Join(tempDir, "ghost.txt")}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("denies path outside the sandbox", func(t *testing.T) {
		res, err := server.handleReadFile(context.Background(),
			newToolRequest("read_file", map[string]any{"path": "/etc/hostname"}))
		require.NoError(t, err)
		require.True(t, res.IsError)
		assert.Contains(t, textResult(t, res), "access denied")
	})

	t.Run("rejects malformed arguments", func(t *testing.T) {
		res, err := server.handleReadFile(context.Background(),
			newToolRequest("read_file", map[string]any{"path": 42}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestReadMultipleFilesTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	first := writeTempFile(t, tempDir, "first.txt", "first content")
	second := writeTempFile(t, tempDir, "second.txt", "second content")
	missing := filepath.Join(tempDir, "missing.txt")

	res, err := server.handleReadMultipleFiles(context.Background(),
		newToolRequest("read_multiple_files", map[string]any{
			"paths": []any{first, missing, second},
		}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := textResult(t, res)
	sections := strings.Split(text, "\n---\n")
	require.Len(t, sections, 3)

	// Sections come back in request order.
	assert.True(t, strings.HasPrefix(sections[0], first+":"))
	assert.Contains(t, sections[0], "first content")
	assert.True(t, strings.HasPrefix(sections[1], missing+": Error - "))
	assert.True(t, strings.HasPrefix(sections[2], second+":"))
	assert.Contains(t, sections[2], "second content")
}

func TestWriteFileTool(t *testing.T) {
	server, tempDir := newReadyServer(t)

	t.Run("writes and confirms", func(t *testing.T) {
		path := filepath.Join(tempDir, "out.txt")

		res, err := server.handleWriteFile(context.Background(),
			newToolRequest("write_file", map[string]any{
				"path":    path,
				"content": "written by tool",
			}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Equal(t, "Successfully wrote to "+path, textResult(t, res))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "written by tool", string(data))
	})

	t.Run("denies path outside the sandbox", func(t *testing.T) {
		res, err := server.handleWriteFile(context.Background(),
			newToolRequest("write_file", map[string]any{
				"path":    "/tmp/filegate-tool-probe.txt",
				"content": "nope",
			}))
		require.NoError(t, err)
		require.True(t, res.IsError)
		assert.Contains(t, textResult(t, res), "access denied")
	})
}

func TestEditFileTool(t *testing.T) {
	t.Run("applies edits and reports diff", func(t *testing.T) {
		server, tempDir := newReadyServer(t)
		path := writeTempFile(t, tempDir, "doc.txt", "First line\nSecond line\nThird line")

		res, err := server.handleEditFile(context.Background(),
			newToolRequest("edit_file", map[string]any{
				"path": path,
				"edits": []any{
					map[string]any{"searchText": "Second line", "replacementText": "2nd line"},
				},
			}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		text := textResult(t, res)
		assert.True(t, strings.HasPrefix(text, "Applied 1 edit(s) to "+path))
		assert.Contains(t, text, "- 1: Second line")
		assert.Contains(t, text, "+ 1: 2nd line")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "First line\n2nd line\nThird line", string(data))
	})

	t.Run("dry run previews without writing", func(t *testing.T) {
		server, tempDir := newReadyServer(t)
		path := writeTempFile(t, tempDir, "doc.txt", "First line\nSecond line\nThird line")

		res, err := server.handleEditFile(context.Background(),
			newToolRequest("edit_file", map[string]any{
				"path": path,
				"edits": []any{
					map[string]any{"searchText": "Second line", "replacementText": "2nd line"},
				},
				"dryRun": true,
			}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		text := textResult(t, res)
		assert.NotContains(t, text, "Applied")
		assert.Contains(t, text, "+ 1: 2nd line")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "First line\nSecond line\nThird line", string(data))
	})

	t.Run("unmatched edit is a tool error", func(t *testing.T) {
		server, tempDir := newReadyServer(t)
		path := writeTempFile(t, tempDir, "doc.txt", "stable content")

		res, err := server.handleEditFile(context.Background(),
			newToolRequest("edit_file", map[string]any{
				"path": path,
				"edits": []any{
					map[string]any{"searchText": "absent", "replacementText": "x"},
				},
			}))
		require.NoError(t, err)
		require.True(t, res.IsError)
		assert.Contains(t, textResult(t, res), "edit match not found")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "stable content", string(data))
	})
}

func TestCreateDirectoryTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	path := filepath.Join(tempDir, "nested", "dir")

	res, err := server.handleCreateDirectory(context.Background(),
		newToolRequest("create_directory", map[string]any{"path": path}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "Successfully created directory "+path, textResult(t, res))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Creating it again succeeds as well.
	res, err = server.handleCreateDirectory(context.Background(),
		newToolRequest("create_directory", map[string]any{"path": path}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestListDirectoryTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	writeTempFile(t, tempDir, "file.txt", "content")
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "subdir"), 0755))

	res, err := server.handleListDirectory(context.Background(),
		newToolRequest("list_directory", map[string]any{"path": tempDir}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	lines := strings.Split(textResult(t, res), "\n")
	assert.Contains(t, lines, "[FILE] file.txt")
	assert.Contains(t, lines, "[DIR] subdir")
}

func TestDirectoryTreeTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "sub"), 0755))
	writeTempFile(t, filepath.Join(tempDir, "sub"), "leaf.txt", "leaf")

	res, err := server.handleDirectoryTree(context.Background(),
		newToolRequest("directory_tree", map[string]any{"path": tempDir}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var tree filemanager.TreeNode
	require.NoError(t, json.Unmarshal([]byte(textResult(t, res)), &tree))
	assert.Equal(t, filepath.Base(tempDir), tree.Name)
	assert.Equal(t, "directory", tree.Type)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "sub", tree.Children[0].Name)
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "leaf.txt", tree.Children[0].Children[0].Name)
	assert.Equal(t, "file", tree.Children[0].Children[0].Type)
}

func TestMoveFileTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	src := writeTempFile(t, tempDir, "src.txt", "payload")
	dst := filepath.Join(tempDir, "dst.txt")

	res, err := server.handleMoveFile(context.Background(),
		newToolRequest("move_file", map[string]any{
			"source":      src,
			"destination": dst,
		}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "Successfully moved "+src+" to "+dst, textResult(t, res))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestSearchFilesTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	writeTempFile(t, tempDir, "match-one.txt", "a")
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "sub"), 0755))
	writeTempFile(t, filepath.Join(tempDir, "sub"), "match-two.txt", "b")
	writeTempFile(t, tempDir, "other.txt", "c")

	t.Run("lists matches", func(t *testing.T) {
		res, err := server.handleSearchFiles(context.Background(),
			newToolRequest("search_files", map[string]any{
				"path":    tempDir,
				"pattern": "match",
			}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		matches := strings.Split(textResult(t, res), "\n")
		assert.Len(t, matches, 2)
		assert.Contains(t, matches, filepath.Join(tempDir, "match-one.txt"))
		assert.Contains(t, matches, filepath.Join(tempDir, "sub", "match-two.txt"))
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		res, err := server.handleSearchFiles(context.Background(),
			newToolRequest("search_files", map[string]any{
				"path":    tempDir,
				"pattern": "zzz-not-here",
			}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Equal(t, "No matches found", textResult(t, res))
	})

	t.Run("honors exclude patterns", func(t *testing.T) {
		res, err := server.handleSearchFiles(context.Background(),
			newToolRequest("search_files", map[string]any{
				"path":            tempDir,
				"pattern":         "match",
				"excludePatterns": []any{"sub"},
			}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Equal(t, filepath.Join(tempDir, "match-one.txt"), textResult(t, res))
	})
}

func TestGetFileInfoTool(t *testing.T) {
	server, tempDir := newReadyServer(t)
	path := writeTempFile(t, tempDir, "info.txt", "12345")

	res, err := server.handleGetFileInfo(context.Background(),
		newToolRequest("get_file_info", map[string]any{"path": path}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	lines := strings.Split(textResult(t, res), "\n")
	assert.Contains(t, lines, "size: 5")
	assert.Contains(t, lines, "isFile: true")
	assert.Contains(t, lines, "isDirectory: false")

	// The attribute order is stable across calls.
	assert.True(t, strings.HasPrefix(lines[0], "size: "))
}

func TestListAllowedDirectoriesTool(t *testing.T) {
	server, tempDir := newReadyServer(t)

	res, err := server.handleListAllowedDirectories(context.Background(),
		newToolRequest("list_allowed_directories", nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, "Allowed directories:\n"+tempDir, textResult(t, res))
}

func TestRegisterTools(t *testing.T) {
	s, _ := newReadyServer(t)
	s.mcpServer = mcpserver.NewMCPServer(serverName, s.version)

	// Registration must not panic and the server must stay usable.
	s.registerTools()
	require.NotNil(t, s.mcpServer)
}
