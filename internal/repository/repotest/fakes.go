// Package repotest provides in-memory repository implementations for tests.
// They mirror the error contracts of the real repositories: pgx.ErrNoRows
// for missing rows, ErrSessionNotFound for missing sessions.
package repotest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nexus-care/complaint-service/internal/domain"
	"github.com/nexus-care/complaint-service/internal/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.ComplaintRepository = (*ComplaintRepo)(nil)
	_ repository.SessionRepository   = (*SessionRepo)(nil)
)

// UserRepo is an in-memory repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]domain.Principal
}

// NewUserRepo creates an empty user repo.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]domain.Principal)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	r.users[id] = user
	return nil
}

func (r *UserRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, user := range r.users {
		if user.Email == email {
			delete(r.users, id)
		}
	}
	return nil
}

// ComplaintRepo is an in-memory repository.ComplaintRepository. Listing
// returns newest-first by insertion, matching the SQL ordering.
type ComplaintRepo struct {
	mu         sync.Mutex
	seq        int
	order      map[string]int
	complaints map[string]domain.Complaint
}

// NewComplaintRepo creates an empty complaint repo.
func NewComplaintRepo() *ComplaintRepo {
	return &ComplaintRepo{
		order:      make(map[string]int),
		complaints: make(map[string]domain.Complaint),
	}
}

func (r *ComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	r.seq++
	r.order[complaint.ID] = r.seq
	r.complaints[complaint.ID] = *complaint
	return nil
}

func (r *ComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := complaint
	return &copied, nil
}

func (r *ComplaintRepo) List(_ context.Context) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Complaint, 0, len(r.complaints))
	for _, complaint := range r.complaints {
		result = append(result, complaint)
	}
	sort.Slice(result, func(i, j int) bool {
		return r.order[result[i].ID] > r.order[result[j].ID]
	})
	return result, nil
}

func (r *ComplaintRepo) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return pgx.ErrNoRows
	}
	complaint.Status = status
	r.complaints[id] = complaint
	return nil
}

func (r *ComplaintRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.complaints, id)
	delete(r.order, id)
	return nil
}

// SessionRepo is an in-memory repository.SessionRepository.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

// NewSessionRepo creates an empty session repo.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *SessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *SessionRepo) Get(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok || session.Expired() {
		return nil, repository.ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

// Len reports the number of live sessions, for logout assertions.
func (r *SessionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
