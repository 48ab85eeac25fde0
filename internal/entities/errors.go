// Package entities contains the domain model and its errors.
package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a declared field is absent from construction input.
	ErrMissingField = errors.New("missing field")
	// ErrUnknownField is returned when construction input supplies an undeclared field.
	ErrUnknownField = errors.New("unknown field")
	// ErrValidation signals a field value failing its format/type/range rule.
	ErrValidation = errors.New("invalid field value")
	// ErrConstraint signals a business-rule or uniqueness violation.
	ErrConstraint = errors.New("constraint violation")
	// ErrInvalidArgument signals a malformed operation argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrTeamNotFound signals a missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrIDAssigned is returned on a second identifier assignment.
	ErrIDAssigned = errors.New("identifier already assigned")
)

var (
	// ErrUserExists signals a username conflict.
	ErrUserExists = fmt.Errorf("user already exists: %w", ErrConstraint)
	// ErrTeamExists signals a team name conflict.
	ErrTeamExists = fmt.Errorf("team already exists: %w", ErrConstraint)
	// ErrEffortOverlap is returned when an added effort overlaps an existing one in time.
	ErrEffortOverlap = fmt.Errorf("efforts may not overlap in time: %w", ErrConstraint)
	// ErrDuplicateMember is returned when a team already has a member with the same username.
	ErrDuplicateMember = fmt.Errorf("team already has user with this username: %w", ErrConstraint)
	// ErrTeamNotEmpty is returned on deletion of a team that still has members.
	ErrTeamNotEmpty = fmt.Errorf("a team with users cannot be deleted: %w", ErrConstraint)
)
