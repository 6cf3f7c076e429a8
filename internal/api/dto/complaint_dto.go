package dto

import (
	"time"

	"github.com/nexus-care/complaint-service/internal/domain"
)

// CreateComplaintRequest payload for filing a complaint.
type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateStatusRequest payload for the admin status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ComplaintResponse is the outward complaint record.
type ComplaintResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      domain.ComplaintStatus `json:"status"`
	AuthorID    string                 `json:"author_id"`
	Username    string                 `json:"username"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewComplaintResponse maps a complaint to its outward record.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          complaint.ID,
		Title:       complaint.Title,
		Description: complaint.Description,
		Status:      complaint.Status,
		AuthorID:    complaint.AuthorID,
		Username:    complaint.AuthorName,
		CreatedAt:   complaint.CreatedAt,
	}
}
