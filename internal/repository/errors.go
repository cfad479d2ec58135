// Package repository implements the catalog store over MySQL. Sentinel
// errors let handlers distinguish failure modes without inspecting SQL
// details: ErrInvalidReference surfaces as 400, ErrEmailExists as a
// duplicate-registration failure, and sql.ErrNoRows as 404.
package repository

import "errors"

// ErrInvalidReference is returned when a create payload references a
// foreign key that does not resolve to an existing row. The whole
// operation fails; nothing is inserted.
var ErrInvalidReference = errors.New("invalid reference")

// ErrEmailExists is returned when registering an email that is already
// taken.
var ErrEmailExists = errors.New("email already exists")
