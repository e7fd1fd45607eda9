package user_service

const (
	RoleAdmin   = "admin"
	RolePartner = "partner"
	RoleViewer  = "viewer"
)

var roleRank = map[string]int{
	RoleViewer:  1,
	RolePartner: 2,
	RoleAdmin:   3,
}

func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// HasAtLeast reports whether role grants everything min grants.
// Unknown roles grant nothing.
func HasAtLeast(role, min string) bool {
	have, ok := roleRank[role]
	if !ok {
		return false
	}
	return have >= roleRank[min]
}
