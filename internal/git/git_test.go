package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a git repo in dir with a user config so commits work on CI.
func initTestRepo(t *testing.T, dir string) {
	t.Helper()
	cmds := [][]string{
		{"git", "-C", dir, "init", "-b", "main"},
		{"git", "-C", dir, "config", "user.email", "test@test.com"},
		{"git", "-C", dir, "config", "user.name", "Test"},
	}
	for _, args := range cmds {
		require.NoError(t, exec.Command(args[0], args[1:]...).Run())
	}
}

func commitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	require.NoError(t, exec.Command("git", "-C", dir, "add", ".").Run())
	require.NoError(t, exec.Command("git", "-C", dir, "commit", "-m", msg).Run())
}

func TestCurrentBranch(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "init")

	c := NewClient()
	branch, err := c.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestCurrentBranch_DetachedHead(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "init")
	require.NoError(t, exec.Command("git", "-C", dir, "checkout", "--detach").Run())

	c := NewClient()
	branch, err := c.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Empty(t, branch, "detached HEAD reports no branch")
}

func TestBranchExists(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "init")
	require.NoError(t, exec.Command("git", "-C", dir, "branch", "feat/x").Run())

	c := NewClient()

	exists, err := c.BranchExists(dir, "feat/x")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.BranchExists(dir, "feat/y")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIsDirty(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "init")

	c := NewClient()

	dirty, err := c.IsDirty(dir)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed\n"), 0644))
	dirty, err = c.IsDirty(dir)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestCheckoutAndMerge(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "init")

	// Feature branch adds a file
	require.NoError(t, exec.Command("git", "-C", dir, "checkout", "-b", "task/x/1").Run())
	commitFile(t, dir, "b.txt", "b\n", "feature work")

	c := NewClient()
	require.NoError(t, c.Checkout(dir, "main"))
	require.NoError(t, c.Merge(dir, "task/x/1"))

	_, err := os.Stat(filepath.Join(dir, "b.txt"))
	assert.NoError(t, err, "merged file should be present on main")
}

func TestCheckout_MissingBranch(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "init")

	c := NewClient()
	err := c.Checkout(dir, "no-such-branch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-branch")
}

func TestMerge_ConflictSurfacesGitOutput(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "base\n", "init")

	require.NoError(t, exec.Command("git", "-C", dir, "checkout", "-b", "task/x/1").Run())
	commitFile(t, dir, "a.txt", "feature\n", "feature change")

	require.NoError(t, exec.Command("git", "-C", dir, "checkout", "main").Run())
	commitFile(t, dir, "a.txt", "mainline\n", "main change")

	c := NewClient()
	err := c.Merge(dir, "task/x/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFLICT")
}

func TestDiffStat(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "init")

	require.NoError(t, exec.Command("git", "-C", dir, "checkout", "-b", "task/x/1").Run())
	commitFile(t, dir, "a.txt", "a changed\n", "change")

	c := NewClient()

	stat, err := c.DiffStat(dir, "main", "task/x/1")
	require.NoError(t, err)
	assert.Contains(t, stat, "a.txt")

	diff, err := c.Diff(dir, "main", "task/x/1")
	require.NoError(t, err)
	assert.Contains(t, diff, "a changed")
}

func TestRepoRoot(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0755))

	c := NewClient()
	root, err := c.RepoRoot(sub)
	require.NoError(t, err)

	// macOS tempdirs resolve through symlinks; compare resolved paths.
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, wantResolved, gotResolved)
}
