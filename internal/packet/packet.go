// Package packet stores review packets as line-oriented markdown files, one
// per branch. The file format is shared with hand-edited packets, so reads
// and writes preserve content byte for byte outside the fields chorus owns.
package packet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the file extension for packet files.
const Ext = ".md"

// ErrNotFound is returned when a branch has no packet on disk.
var ErrNotFound = errors.New("packet not found")

// Store reads and writes packets under a single directory.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// SanitizeBranch flattens a hierarchical branch name into a file identifier
// by replacing every path separator with a double underscore. Nothing else is
// escaped; two branch names that collapse to the same string collide silently.
func SanitizeBranch(branch string) string {
	return strings.ReplaceAll(branch, "/", "__")
}

// PathFor returns the packet path for a branch.
func (s *Store) PathFor(branch string) string {
	return filepath.Join(s.Dir, SanitizeBranch(branch)+Ext)
}

// Exists reports whether a packet file is present at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Read returns the packet's lines, without trailing newlines. A missing
// packet yields ErrNotFound.
func (s *Store) Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read packet: %w", err)
	}
	content := strings.TrimSuffix(string(data), "\n")
	return strings.Split(content, "\n"), nil
}

// Write replaces the packet at path with the given lines, each terminated by
// a newline. The parent directory is created if needed.
func (s *Store) Write(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create packet directory: %w", err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write packet: %w", err)
	}
	return nil
}

// List returns the packet file names (without extension) under the store
// directory, i.e. the sanitized branch identifiers. A missing directory is
// treated as empty.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read packet directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	return names, nil
}

// Initial renders a fresh packet body for a branch. The layout is fixed:
// manual reviewers and the approval updater both rely on the exact field
// prefixes emitted here.
func Initial(branch, base, compareRange, created string) []string {
	return []string{
		"# Review Packet",
		"",
		"- Branch: " + branch,
		"- Base: " + base,
		"- Compare: " + compareRange,
		"- Created: " + created,
		"",
		"## Task Intent",
		"[fill in]",
		"",
		"## Summary",
		"[fill in]",
		"",
		"## Reflect Findings",
		"[fill in]",
		"",
		"## Review Commands",
		"- git diff --stat " + compareRange,
		"- git diff " + compareRange,
		"- git log --left-right --graph " + base + "..." + branch,
		"",
		"## Approval",
		"- APPROVED: no",
		"- Reviewer: ",
		"- Timestamp: ",
		"- Notes: ",
	}
}
