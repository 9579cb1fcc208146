package registry

import "errors"

var (
	// ErrRoleNotFound is returned by Select/Query for a role name that was
	// never registered.
	ErrRoleNotFound = errors.New("registry: role not found")
	// ErrNoRoleSelected is returned by Query when no role has been
	// selected yet (spec §4.4 state machine).
	ErrNoRoleSelected = errors.New("registry: no role selected")
	// ErrRoleNotReady is returned when a selected role's build has not
	// completed successfully.
	ErrRoleNotReady = errors.New("registry: role not ready")
	// ErrInvalidRoleSpec is returned by Register when validation fails.
	ErrInvalidRoleSpec = errors.New("registry: invalid role spec")
)
