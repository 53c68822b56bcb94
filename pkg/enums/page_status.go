package enums

import "fmt"

// PageStatus defines the publication state of a landing page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
	PageStatusArchived  PageStatus = "archived"
)

var validPageStatuses = []PageStatus{
	PageStatusDraft,
	PageStatusPublished,
	PageStatusArchived,
}

func (p PageStatus) String() string {
	return string(p)
}

// IsValid reports whether the status is known. Any transition between
// valid statuses is legal.
func (p PageStatus) IsValid() bool {
	for _, candidate := range validPageStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePageStatus converts raw input into a PageStatus.
func ParsePageStatus(value string) (PageStatus, error) {
	for _, candidate := range validPageStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid page status %q", value)
}
