// Package auth evaluates whether a role grants a named action scope.
// The table is fixed at compile time: this is deliberately not a general
// RBAC engine. Ownership bypasses (a user deleting their own exercise)
// are composed by callers before falling back to Authorize.
package auth

import "errors"

// ErrForbidden is returned when a role does not grant the requested
// scope. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// Scope names gate the catalog mutations.
const (
	ScopeMuscleGroupPost = "muscle_group_post"
	ScopeMusclePost      = "muscle_post"
	ScopeMuscleDelete    = "muscle_delete"
	ScopeExerciseDelete  = "exercise_delete"
)

// scopes maps a role to the set of scopes it grants. Only admin carries
// explicit grants; every other role (including the default "basic")
// resolves to the empty set.
var scopes = map[string]map[string]struct{}{
	"admin": {
		ScopeMuscleGroupPost: {},
		ScopeMusclePost:      {},
		ScopeMuscleDelete:    {},
		ScopeExerciseDelete:  {},
	},
}

// Authorize reports whether role grants scope. Unknown roles grant
// nothing.
func Authorize(role, scope string) error {
	if _, ok := scopes[role][scope]; !ok {
		return ErrForbidden
	}
	return nil
}
