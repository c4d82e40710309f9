package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/repository"
	apperrors "github.com/E72-BI/cartao-santa-casa/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Role   domain.Role
	Member *domain.Member
}

// SessionMiddleware loads the persisted session and exposes it as the
// request principal.
type SessionMiddleware struct {
	sessions *repository.SessionStore
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *repository.SessionStore) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Handle enforces an established session for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	sess := m.sessions.Current()
	if !sess.LoggedIn || sess.Member == nil || sess.Role == nil {
		return apperrors.NewUnauthorized("login required")
	}

	c.Locals(principalKey, &Principal{Role: *sess.Role, Member: sess.Member})
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
