package models

// ReviewPacket holds the fields parsed from a packet file. The branch is
// encoded in the file name, not stored in the body, so Branch here is
// whatever the "- Branch:" line carries.
type ReviewPacket struct {
	Branch       string
	Base         string
	CompareRange string
	CreatedAt    string
	Approved     bool
	Reviewer     string
	ApprovedAt   string
	Notes        string
}
