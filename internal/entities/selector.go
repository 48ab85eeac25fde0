package entities

import "fmt"

// UserSelector identifies a user by exactly one of id or username.
type UserSelector struct {
	ID       int64
	Username string
}

// Validate enforces the exactly-one-selector rule.
func (s UserSelector) Validate() error {
	if s.ID != 0 && s.Username != "" {
		return fmt.Errorf("%w: only one of id or username may be used as index", ErrInvalidArgument)
	}
	if s.ID == 0 && s.Username == "" {
		return fmt.Errorf("%w: one of id or username must be used as index", ErrInvalidArgument)
	}
	return nil
}

// TeamSelector identifies a team by exactly one of id or name.
type TeamSelector struct {
	ID   int64
	Name string
}

// Validate enforces the exactly-one-selector rule.
func (s TeamSelector) Validate() error {
	if s.ID != 0 && s.Name != "" {
		return fmt.Errorf("%w: only one of id or name may be used as index", ErrInvalidArgument)
	}
	if s.ID == 0 && s.Name == "" {
		return fmt.Errorf("%w: one of id or name must be used as index", ErrInvalidArgument)
	}
	return nil
}
