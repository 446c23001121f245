package packet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeBranch(t *testing.T) {
	assert.Equal(t, "task__foo__bar", SanitizeBranch("task/foo/bar"))
	assert.Equal(t, "main", SanitizeBranch("main"))
	assert.Equal(t, "feat__x", SanitizeBranch("feat/x"))
}

func TestSanitizeBranch_Collision(t *testing.T) {
	// Known limitation: distinct names can collapse to the same identifier.
	assert.Equal(t, SanitizeBranch("task/a/b"), SanitizeBranch("task__a/b"))
}

func TestPathFor(t *testing.T) {
	s := NewStore("/tmp/reviews")
	assert.Equal(t, filepath.Join("/tmp/reviews", "task__x__1.md"), s.PathFor("task/x/1"))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "reviews"))
	path := s.PathFor("task/x/1")

	lines := []string{"# Review Packet", "", "- Branch: task/x/1"}
	require.NoError(t, s.Write(path, lines))

	got, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestWrite_TrailingNewline(t *testing.T) {
	s := NewStore(t.TempDir())
	path := s.PathFor("b")

	require.NoError(t, s.Write(path, []string{"one", "two"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "nested", "reviews"))
	path := s.PathFor("b")

	require.NoError(t, s.Write(path, []string{"x"}))
	assert.True(t, s.Exists(path))
}

func TestRead_NotFound(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Read(s.PathFor("missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRead_PreservesInteriorBlankLines(t *testing.T) {
	s := NewStore(t.TempDir())
	path := s.PathFor("b")
	lines := []string{"a", "", "", "b", ""}
	require.NoError(t, s.Write(path, lines))

	got, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestList(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Write(s.PathFor("task/a/1"), []string{"x"}))
	require.NoError(t, s.Write(s.PathFor("task/b/2"), []string{"x"}))

	names, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"task__a__1", "task__b__2"}, names)
}

func TestList_MissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope"))
	names, err := s.List()
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestInitial_Format(t *testing.T) {
	lines := Initial("task/x/1", "feat/x", "feat/x..task/x/1", "2026-08-29T10:00:00Z")
	content := strings.Join(lines, "\n") + "\n"

	want := "# Review Packet\n" +
		"\n" +
		"- Branch: task/x/1\n" +
		"- Base: feat/x\n" +
		"- Compare: feat/x..task/x/1\n" +
		"- Created: 2026-08-29T10:00:00Z\n" +
		"\n" +
		"## Task Intent\n" +
		"[fill in]\n" +
		"\n" +
		"## Summary\n" +
		"[fill in]\n" +
		"\n" +
		"## Reflect Findings\n" +
		"[fill in]\n" +
		"\n" +
		"## Review Commands\n" +
		"- git diff --stat feat/x..task/x/1\n" +
		"- git diff feat/x..task/x/1\n" +
		"- git log --left-right --graph feat/x...task/x/1\n" +
		"\n" +
		"## Approval\n" +
		"- APPROVED: no\n" +
		"- Reviewer: \n" +
		"- Timestamp: \n" +
		"- Notes: \n"

	assert.Equal(t, want, content)
}
