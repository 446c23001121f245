package packet

import (
	"strings"

	"github.com/cicadas-dev/chorus/internal/models"
)

// Approval field line prefixes. A line matching one of these belongs to
// chorus; everything else in the packet is opaque narrative text.
const (
	prefixApproved  = "- APPROVED:"
	prefixReviewer  = "- Reviewer:"
	prefixTimestamp = "- Timestamp:"
	prefixNotes     = "- Notes:"
)

// approvedMarker is what the merge gate looks for, compared after trimming
// and lowercasing.
const approvedMarker = "- approved: yes"

// ApplyApproval returns a new line sequence with every approval-field line
// replaced by a freshly formatted one. Non-field lines pass through verbatim,
// in order. If a field prefix never occurs, no line is inserted for it.
func ApplyApproval(lines []string, approved bool, reviewer, notes, timestamp string) []string {
	value := "no"
	if approved {
		value = "yes"
	}

	updated := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, prefixApproved):
			updated = append(updated, prefixApproved+" "+value)
		case strings.HasPrefix(line, prefixReviewer):
			updated = append(updated, prefixReviewer+" "+reviewer)
		case strings.HasPrefix(line, prefixTimestamp):
			updated = append(updated, prefixTimestamp+" "+timestamp)
		case strings.HasPrefix(line, prefixNotes):
			updated = append(updated, prefixNotes+" "+notes)
		default:
			updated = append(updated, line)
		}
	}
	return updated
}

// IsApproved reports whether any line, trimmed and lowercased, equals the
// approved marker. The scan deliberately covers the whole document, matching
// what the merge gate has always accepted from hand-edited packets.
func IsApproved(lines []string) bool {
	for _, line := range lines {
		if strings.ToLower(strings.TrimSpace(line)) == approvedMarker {
			return true
		}
	}
	return false
}

// Parse extracts the identity and approval fields from a packet for display.
// The first occurrence of each field wins; narrative sections are ignored.
func Parse(lines []string) *models.ReviewPacket {
	p := &models.ReviewPacket{}
	seen := map[string]bool{}

	take := func(key, line, prefix string) (string, bool) {
		if seen[key] || !strings.HasPrefix(line, prefix) {
			return "", false
		}
		seen[key] = true
		return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
	}

	for _, line := range lines {
		if v, ok := take("branch", line, "- Branch:"); ok {
			p.Branch = v
		} else if v, ok := take("base", line, "- Base:"); ok {
			p.Base = v
		} else if v, ok := take("compare", line, "- Compare:"); ok {
			p.CompareRange = v
		} else if v, ok := take("created", line, "- Created:"); ok {
			p.CreatedAt = v
		} else if v, ok := take("approved", line, prefixApproved); ok {
			p.Approved = strings.EqualFold(v, "yes")
		} else if v, ok := take("reviewer", line, prefixReviewer); ok {
			p.Reviewer = v
		} else if v, ok := take("timestamp", line, prefixTimestamp); ok {
			p.ApprovedAt = v
		} else if v, ok := take("notes", line, prefixNotes); ok {
			p.Notes = v
		}
	}
	return p
}
