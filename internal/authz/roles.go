package authz

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Principal is the authenticated identity making a request.
type Principal struct {
	ID   int64
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
