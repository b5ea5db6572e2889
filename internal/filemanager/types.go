package filemanager

// Entry is a single directory listing entry.
type Entry struct {
	Name  string
	IsDir bool
}

// ReadOutcome is the per-path result of a batch read. Err is empty on
// success; when it is set, Content is meaningless.
type ReadOutcome struct {
	Content string
	Err     string
}

// TreeNode is one node of a recursive directory tree. Directories carry
// a Children slice, files never do.
type TreeNode struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Children []*TreeNode `json:"children,omitempty"`
}

const (
	nodeTypeFile      = "file"
	nodeTypeDirectory = "directory"
)
