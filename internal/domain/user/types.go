package user

// Role is the closed set of user roles in the surrounding platform. The core
// consumes it by reference and never re-validates role semantics.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
	RoleClient  Role = "CLIENT"
	RoleStaff   Role = "STAFF"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleAdmin, RoleClient, RoleStaff:
		return true
	default:
		return false
	}
}
