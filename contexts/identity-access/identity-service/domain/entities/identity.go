package entities

import "time"

// Role is one of the three privilege tiers, totally ordered for gating:
// admin covers instructor, instructor covers learner.
type Role string

const (
	RoleLearner    Role = "learner"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Identity is a directory record. The core reads identities; the only
// mutation is the administrative role promotion path.
type Identity struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
