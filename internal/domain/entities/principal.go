package entities

// Principal is the authenticated caller: identity plus role, supplied by the
// boundary layer after token validation.
type Principal struct {
	Email string
	Role  Role
}
