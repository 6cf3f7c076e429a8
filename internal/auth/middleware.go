package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexus-care/complaint-service/internal/domain"
	"github.com/nexus-care/complaint-service/internal/repository"
	apperrors "github.com/nexus-care/complaint-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, resolved once per request
// from the session cookie. It is carried in request-scoped locals, never in
// package state.
type Principal struct {
	User    *domain.Principal
	Session *domain.Session
}

// SessionMiddleware resolves session cookies into principals.
type SessionMiddleware struct {
	cookieName string
	sessions   repository.SessionRepository
	users      repository.UserRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(cookieName string, sessions repository.SessionRepository, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{cookieName: cookieName, sessions: sessions, users: users}
}

// Handle enforces authentication for protected routes. Every failure mode
// returns the same error; callers cannot distinguish a missing cookie from
// a malformed, expired, or revoked token.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Cookies(m.cookieName)
	if token == "" {
		return apperrors.NewUnauthenticated()
	}

	session, err := m.sessions.Get(c.Context(), token)
	if err != nil {
		return apperrors.NewUnauthenticated()
	}
	if session.Expired() {
		_ = m.sessions.Delete(c.Context(), token)
		return apperrors.NewUnauthenticated()
	}

	user, err := m.users.GetByID(c.Context(), session.UserID)
	if err != nil {
		return apperrors.NewUnauthenticated()
	}

	c.Locals(principalKey, &Principal{User: user, Session: session})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
