package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// Client defines the interface for git operations against a repository.
// All methods take a path parameter so callers can operate on any checkout.
type Client interface {
	RepoRoot(path string) (string, error)
	CurrentBranch(path string) (string, error)
	BranchExists(path, branch string) (bool, error)
	IsDirty(path string) (bool, error)
	Checkout(path, branch string) error
	Merge(path, branch string) error
	Diff(path, base, branch string) (string, error)
	DiffStat(path, base, branch string) (string, error)
}

// RealClient implements Client using real git commands.
type RealClient struct{}

// NewClient returns a new RealClient.
func NewClient() *RealClient {
	return &RealClient{}
}

func gitCmd(path string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", path}, args...)
	out, err := exec.Command("git", fullArgs...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *RealClient) RepoRoot(path string) (string, error) {
	return gitCmd(path, "rev-parse", "--show-toplevel")
}

// CurrentBranch reports the checked-out branch. On a detached HEAD the output
// is empty with no error; callers must treat empty as "unknown".
func (c *RealClient) CurrentBranch(path string) (string, error) {
	return gitCmd(path, "branch", "--show-current")
}

func (c *RealClient) BranchExists(path, branch string) (bool, error) {
	err := exec.Command("git", "-C", path, "show-ref", "--verify", "--quiet", "refs/heads/"+branch).Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *RealClient) IsDirty(path string) (bool, error) {
	out, err := gitCmd(path, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Checkout switches the working tree to branch. Conflicts and missing
// branches surface as errors carrying git's own message.
func (c *RealClient) Checkout(path, branch string) error {
	_, err := gitCmd(path, "checkout", branch)
	return err
}

// Merge merges branch into the currently checked-out branch. Merge output
// (including conflict reports) is combined so the caller sees git's native
// text on failure.
func (c *RealClient) Merge(path, branch string) error {
	fullArgs := []string{"-C", path, "merge", branch}
	out, err := exec.Command("git", fullArgs...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("git merge %s: %s", branch, strings.TrimSpace(string(out)))
	}
	return nil
}

func (c *RealClient) Diff(path, base, branch string) (string, error) {
	return gitCmd(path, "diff", base+".."+branch)
}

func (c *RealClient) DiffStat(path, base, branch string) (string, error) {
	return gitCmd(path, "diff", "--stat", base+".."+branch)
}
