package domain

import "time"

// ComplaintStatus enumerates the three ticket states. Any of the three may
// be set from any other; there is no transition graph.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
)

// ComplaintStatuses lists every valid status value.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusPending,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
}

// ValidComplaintStatus reports whether the value is a known status.
func ValidComplaintStatus(s ComplaintStatus) bool {
	for _, candidate := range ComplaintStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Complaint is the aggregate for resident-filed tickets. AuthorName is
// denormalized from the users table on reads; it is never written.
type Complaint struct {
	ID          string
	AuthorID    string
	AuthorName  string
	Title       string
	Description string
	Status      ComplaintStatus
	CreatedAt   time.Time
}
