package services

import "coursebay/contexts/identity-access/identity-service/domain/entities"

// roleRank is the single ordered-capability table consulted for gating.
// Adding a role is a one-line edit here; nothing else compares roles.
var roleRank = map[entities.Role]int{
	entities.RoleLearner:    1,
	entities.RoleInstructor: 2,
	entities.RoleAdmin:      3,
}

func IsValidRole(role entities.Role) bool {
	_, ok := roleRank[role]
	return ok
}

// Satisfies reports whether a caller role meets a required tier. An empty
// required role means any authenticated caller qualifies.
func Satisfies(have entities.Role, required entities.Role) bool {
	if required == "" {
		return IsValidRole(have)
	}
	haveRank, ok := roleRank[have]
	if !ok {
		return false
	}
	requiredRank, ok := roleRank[required]
	if !ok {
		return false
	}
	return haveRank >= requiredRank
}

// HomeTarget is the dashboard a caller lands on when bounced off a surface
// above their tier.
func HomeTarget(role entities.Role) string {
	switch role {
	case entities.RoleAdmin:
		return "/admin"
	case entities.RoleInstructor:
		return "/instructor"
	default:
		return "/"
	}
}
