package entity

// Role names known to the authorization chain. Roles live in their own
// table; these constants mirror the seeded rows.
const (
	RoleAdmin     = "admin"
	RoleMember    = "member"
	RoleModerator = "moderator"
)

// Role is the authorization role attached to an account. The name is
// informational for clients; the id is what the store relates on.
type Role struct {
	RoleID   int64  `json:"roleid" validate:"required,min=1"`
	RoleName string `json:"rolename,omitempty" validate:"omitempty,max=50"`
}
