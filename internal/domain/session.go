package domain

import "strings"

// Role differentiates administrators from ordinary members.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Session is the persisted record of who is currently using the portal.
// Role is nil while nobody is signed in, so the stored record carries an
// explicit null rather than omitting the key.
type Session struct {
	LoggedIn bool    `json:"loggedIn"`
	Role     *Role   `json:"role"`
	Member   *Member `json:"member"`
}

// RoleForEmail derives the role at login time. Role is never stored on the
// member record; any email containing "admin@" is an administrator.
func RoleForEmail(email string) Role {
	if strings.Contains(strings.ToLower(email), "admin@") {
		return RoleAdmin
	}
	return RoleMember
}
