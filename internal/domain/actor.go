package domain

// Role identifies the kind of caller.
type Role string

// List of caller roles
const (
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
	RoleSystem  Role = "system"
)

// Actor is the explicit identity of whoever requested an operation.
// ID is the courier id for RoleCourier; zero means the courier did not identify itself.
type Actor struct {
	Role Role
	ID   int64
}

// Admin returns the admin panel actor.
func Admin() Actor { return Actor{Role: RoleAdmin} }

// System returns the actor used for event-driven changes.
func System() Actor { return Actor{Role: RoleSystem} }

// CourierActor returns a courier actor.
func CourierActor(id int64) Actor { return Actor{Role: RoleCourier, ID: id} }
