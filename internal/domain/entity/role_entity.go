package entity

// Role represents an authorization role.
// Many-to-many with User via user_roles.
// Names are stored in canonical form (upper-case, hyphen-separated).
type Role struct {
	ID   int32
	Name string
}
