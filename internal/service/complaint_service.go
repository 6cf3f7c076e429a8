package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nexus-care/complaint-service/internal/auth"
	"github.com/nexus-care/complaint-service/internal/domain"
	"github.com/nexus-care/complaint-service/internal/events"
	"github.com/nexus-care/complaint-service/internal/repository"
	apperrors "github.com/nexus-care/complaint-service/pkg/util"
)

// ComplaintService coordinates complaint workflows. Every operation checks
// the access-control table exactly once before touching storage.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	Dispatcher    events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create files a complaint on behalf of the caller. Status always starts
// at Pending.
func (s *ComplaintService) Create(ctx context.Context, caller *domain.Principal, title, description string) (*domain.Complaint, error) {
	if !auth.Allows(caller.Role, auth.ActionCreateComplaint) {
		return nil, apperrors.NewForbidden("not allowed to create complaints")
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	complaint := &domain.Complaint{
		AuthorID:    caller.ID,
		AuthorName:  caller.Username,
		Title:       title,
		Description: description,
		Status:      domain.ComplaintStatusPending,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       actorFor(caller),
		Payload: events.ComplaintCreatedPayload{
			Title:  complaint.Title,
			Status: complaint.Status,
		},
	})
	return complaint, nil
}

// List returns every complaint in the system. Visibility is deliberately
// not scoped to the caller; any authenticated role sees all tickets.
func (s *ComplaintService) List(ctx context.Context, caller *domain.Principal) ([]domain.Complaint, error) {
	if !auth.Allows(caller.Role, auth.ActionListComplaints) {
		return nil, apperrors.NewForbidden("not allowed to list complaints")
	}
	complaints, err := s.complaints.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	return complaints, nil
}

// UpdateStatus sets a complaint's status. Admin only; the three status
// values carry no ordering, so any value may replace any other.
// Last-writer-wins under concurrent updates.
func (s *ComplaintService) UpdateStatus(ctx context.Context, caller *domain.Principal, id string, newStatus domain.ComplaintStatus) (*domain.Complaint, error) {
	if !auth.Allows(caller.Role, auth.ActionUpdateStatus) {
		return nil, apperrors.NewForbidden("admins only")
	}
	if !domain.ValidComplaintStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := complaint.Status
	if err := s.complaints.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	complaint.Status = newStatus

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       actorFor(caller),
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return complaint, nil
}

// Delete permanently removes a complaint. Admin only.
func (s *ComplaintService) Delete(ctx context.Context, caller *domain.Principal, id string) error {
	if !auth.Allows(caller.Role, auth.ActionDeleteComplaint) {
		return apperrors.NewForbidden("admins only")
	}

	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	if err := s.complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintDeleted,
		ComplaintID: id,
		Actor:       actorFor(caller),
		Payload: events.ComplaintDeletedPayload{
			Title: complaint.Title,
		},
	})
	return nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(caller *domain.Principal) events.Actor {
	return events.Actor{UserID: caller.ID, Role: caller.Role}
}
