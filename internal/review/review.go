// Package review implements the review-packet workflow: creating a packet
// for a task branch, recording an approval decision, and gating a merge on
// that decision.
package review

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cicadas-dev/chorus/internal/git"
	"github.com/cicadas-dev/chorus/internal/models"
	"github.com/cicadas-dev/chorus/internal/packet"
)

// Workflow failure taxonomy. Git tool failures (checkout/merge) are not
// sentinels; they propagate with git's own message attached.
var (
	ErrNoBranch       = errors.New("could not determine current branch")
	ErrNoBase         = errors.New("base branch not provided and could not be inferred")
	ErrPacketNotFound = errors.New("review packet not found")
	ErrNotApproved    = errors.New("review packet is not approved")
)

// Default branch naming convention. These are the single source for both
// the config-file defaults and the fallback when config is absent.
const (
	DefaultTaskPrefix = "task"
	DefaultBasePrefix = "feat"
)

// Config holds the branch naming convention used for base inference.
type Config struct {
	TaskPrefix string
	BasePrefix string
}

// DefaultConfig returns the review config, reading from viper when available.
func DefaultConfig() Config {
	taskPrefix := viper.GetString("branch.task_prefix")
	if taskPrefix == "" {
		taskPrefix = DefaultTaskPrefix
	}
	basePrefix := viper.GetString("branch.base_prefix")
	if basePrefix == "" {
		basePrefix = DefaultBasePrefix
	}
	return Config{TaskPrefix: taskPrefix, BasePrefix: basePrefix}
}

// InferBase derives a base branch from a task branch's naming convention:
// task/<name>/... maps to feat/<name>. Any other shape yields "".
func InferBase(branch string, cfg Config) string {
	parts := strings.Split(branch, "/")
	if len(parts) >= 2 && parts[0] == cfg.TaskPrefix {
		return cfg.BasePrefix + "/" + parts[1]
	}
	return ""
}

// CreateResult holds the outcome of creating a review packet.
type CreateResult struct {
	Path    string
	Branch  string
	Base    string
	Created bool
}

// ApprovalResult holds the outcome of an approval update.
type ApprovalResult struct {
	Path     string
	Branch   string
	Approved bool
}

// MergeResult holds the outcome of a gated merge.
type MergeResult struct {
	Branch string
	Base   string
}

// Service orchestrates packet creation, approval updates, and gated merges
// for one repository root.
type Service struct {
	git     git.Client
	packets *packet.Store
	root    string
	cfg     Config
}

// NewService creates a review service for the repo at root.
func NewService(g git.Client, packets *packet.Store, root string, cfg Config) *Service {
	return &Service{git: g, packets: packets, root: root, cfg: cfg}
}

// resolveBranch falls back to the checked-out branch when branch is empty.
// A failing or empty probe both mean the branch is unknown.
func (s *Service) resolveBranch(branch string) (string, error) {
	if branch != "" {
		return branch, nil
	}
	current, err := s.git.CurrentBranch(s.root)
	if err != nil || current == "" {
		return "", ErrNoBranch
	}
	return current, nil
}

func (s *Service) resolveBase(branch, base string) (string, error) {
	if base == "" {
		base = InferBase(branch, s.cfg)
	}
	if base == "" {
		return "", ErrNoBase
	}
	return base, nil
}

// Create writes the initial packet for branch. If the packet already exists
// it is left untouched and the result reports Created false.
func (s *Service) Create(branch, base string) (*CreateResult, error) {
	branch, err := s.resolveBranch(branch)
	if err != nil {
		return nil, err
	}
	base, err = s.resolveBase(branch, base)
	if err != nil {
		return nil, err
	}

	path := s.packets.PathFor(branch)
	res := &CreateResult{Path: path, Branch: branch, Base: base}
	if s.packets.Exists(path) {
		return res, nil
	}

	compareRange := base + ".." + branch
	createdAt := time.Now().UTC().Format(time.RFC3339)
	lines := packet.Initial(branch, base, compareRange, createdAt)
	if err := s.packets.Write(path, lines); err != nil {
		return nil, err
	}
	res.Created = true
	return res, nil
}

// SetApproval rewrites the approval fields of an existing packet. The
// timestamp is refreshed on every update, rejections included.
func (s *Service) SetApproval(branch, reviewer string, approved bool, notes string) (*ApprovalResult, error) {
	branch, err := s.resolveBranch(branch)
	if err != nil {
		return nil, err
	}

	path := s.packets.PathFor(branch)
	lines, err := s.packets.Read(path)
	if err != nil {
		if errors.Is(err, packet.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPacketNotFound, path)
		}
		return nil, err
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	updated := packet.ApplyApproval(lines, approved, reviewer, notes, timestamp)
	if err := s.packets.Write(path, updated); err != nil {
		return nil, err
	}
	return &ApprovalResult{Path: path, Branch: branch, Approved: approved}, nil
}

// MergeIfApproved merges branch into base, but only when the packet carries
// an affirmative approval. The packet and approval checks run before any
// repository mutation; a git failure after that (e.g. a merge conflict) is
// surfaced verbatim for the operator to resolve.
func (s *Service) MergeIfApproved(branch, base string) (*MergeResult, error) {
	branch, err := s.resolveBranch(branch)
	if err != nil {
		return nil, err
	}
	base, err = s.resolveBase(branch, base)
	if err != nil {
		return nil, err
	}

	path := s.packets.PathFor(branch)
	lines, err := s.packets.Read(path)
	if err != nil {
		if errors.Is(err, packet.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPacketNotFound, path)
		}
		return nil, err
	}

	if !packet.IsApproved(lines) {
		return nil, fmt.Errorf("%w: %s", ErrNotApproved, path)
	}

	// Preflight before touching the working tree: a dirty checkout or a
	// missing base would fail partway through the checkout+merge sequence.
	dirty, err := s.git.IsDirty(s.root)
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, fmt.Errorf("working tree has uncommitted changes; commit or stash before merging")
	}
	exists, err := s.git.BranchExists(s.root, base)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("base branch not found: %s", base)
	}

	if err := s.git.Checkout(s.root, base); err != nil {
		return nil, err
	}
	if err := s.git.Merge(s.root, branch); err != nil {
		return nil, err
	}
	return &MergeResult{Branch: branch, Base: base}, nil
}

// DiffResult holds diff output for a branch pair.
type DiffResult struct {
	Branch string
	Base   string
	Output string
}

// Diff returns the diff (or stat summary with stat true) between base and
// branch, the same range the packet's Review Commands section lists. Both
// branches must exist.
func (s *Service) Diff(branch, base string, stat bool) (*DiffResult, error) {
	branch, err := s.resolveBranch(branch)
	if err != nil {
		return nil, err
	}
	base, err = s.resolveBase(branch, base)
	if err != nil {
		return nil, err
	}

	for _, b := range []string{base, branch} {
		exists, err := s.git.BranchExists(s.root, b)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("branch not found: %s", b)
		}
	}

	var out string
	if stat {
		out, err = s.git.DiffStat(s.root, base, branch)
	} else {
		out, err = s.git.Diff(s.root, base, branch)
	}
	if err != nil {
		return nil, err
	}
	return &DiffResult{Branch: branch, Base: base, Output: out}, nil
}

// PacketInfo pairs a packet's file identity with its parsed fields.
type PacketInfo struct {
	Name   string
	Path   string
	Packet *models.ReviewPacket
}

// ListPackets parses every packet in the store for display. Unreadable
// packets are skipped rather than failing the whole listing.
func (s *Service) ListPackets() ([]*PacketInfo, error) {
	names, err := s.packets.List()
	if err != nil {
		return nil, err
	}

	var infos []*PacketInfo
	for _, name := range names {
		path := filepath.Join(s.packets.Dir, name+packet.Ext)
		lines, err := s.packets.Read(path)
		if err != nil {
			continue
		}
		infos = append(infos, &PacketInfo{Name: name, Path: path, Packet: packet.Parse(lines)})
	}
	return infos, nil
}

// Load reads the packet for branch. Used by the display commands; the
// content is never written back.
func (s *Service) Load(branch string) (string, []string, error) {
	branch, err := s.resolveBranch(branch)
	if err != nil {
		return "", nil, err
	}
	path := s.packets.PathFor(branch)
	lines, err := s.packets.Read(path)
	if err != nil {
		if errors.Is(err, packet.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: %s", ErrPacketNotFound, path)
		}
		return "", nil, err
	}
	return path, lines, nil
}
