package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dshills/linedit/internal/vfs"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// DirTree renders the directory tree under root, one entry per line.
// The first line is the name of root itself. Entries are sorted by name
// and hidden entries are skipped.
func DirTree(fsys vfs.FS, root string) ([]string, error) {
	if root == "" {
		root = "."
	}
	if !fsys.Exists(root) {
		return nil, fmt.Errorf("%s: %w", root, fs.ErrNotExist)
	}
	if !fsys.IsDir(root) {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDir)
	}

	lines := []string{filepath.Base(absPath(root))}
	if err := walkTree(fsys, root, "", &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func walkTree(fsys vfs.FS, dir, prefix string, lines *[]string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	visible := entries[:0:0]
	for _, e := range entries {
		if !e.IsHidden() {
			visible = append(visible, e)
		}
	}

	for i, e := range visible {
		branch, indent := branchMid, indentMid
		if i == len(visible)-1 {
			branch, indent = branchLast, indentLast
		}
		*lines = append(*lines, prefix+branch+e.Name())
		if e.IsDir() {
			if err := walkTree(fsys, filepath.Join(dir, e.Name()), prefix+indent, lines); err != nil {
				return err
			}
		}
	}
	return nil
}

// DirTree renders the tree under root using the workspace file system.
func (w *Workspace) DirTree(root string) ([]string, error) {
	return DirTree(w.fs, root)
}
