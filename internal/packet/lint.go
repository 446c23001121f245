package packet

import (
	"fmt"
	"strings"
)

// Check represents a single packet structure check.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Lint evaluates a packet's structure: the fixed title, the identity fields,
// and the approval block. The approval updater only rewrites lines that are
// already present, so a packet that drifts from the expected shape keeps
// drifting; Lint is how that gets noticed.
func Lint(lines []string) []Check {
	var checks []Check

	checks = append(checks, checkTitle(lines))
	for _, prefix := range []string{"- Branch:", "- Base:", "- Compare:", "- Created:"} {
		checks = append(checks, checkFieldCount(lines, prefix, 1))
	}
	checks = append(checks, checkSection(lines, "## Approval"))
	for _, prefix := range []string{prefixApproved, prefixReviewer, prefixTimestamp, prefixNotes} {
		checks = append(checks, checkFieldCount(lines, prefix, 1))
	}

	return checks
}

func checkTitle(lines []string) Check {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line == "# Review Packet" {
			return Check{Name: "Title", Passed: true, Detail: "title present"}
		}
		break
	}
	return Check{Name: "Title", Passed: false, Detail: "first line is not '# Review Packet'"}
}

func checkSection(lines []string, heading string) Check {
	for _, line := range lines {
		if strings.TrimSpace(line) == heading {
			return Check{Name: heading, Passed: true, Detail: "section present"}
		}
	}
	return Check{Name: heading, Passed: false, Detail: "section missing"}
}

func checkFieldCount(lines []string, prefix string, want int) Check {
	count := 0
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}
	name := strings.TrimSuffix(strings.TrimPrefix(prefix, "- "), ":")
	if count == want {
		return Check{Name: name, Passed: true, Detail: "field present"}
	}
	return Check{Name: name, Passed: false, Detail: fmt.Sprintf("expected %d '%s' line(s), found %d", want, prefix, count)}
}
