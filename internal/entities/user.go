package entities

import (
	"sort"
	"strings"
	"time"
)

func capitalize(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

// User is a volunteer. It is an entity: scalar fields stay mutable through the
// same validation rules used at construction, and the persisted identifier is
// metadata excluded from value comparison.
type User struct {
	id        int64
	username  string
	firstName string
	lastName  string
	email     string
	efforts   map[effortKey]*Effort
}

var userSchema = Schema{
	{Name: "username", Validate: MatchRule(`^[A-Za-z][A-Za-z0-9]+$`, nil)},
	{Name: "first_name", Validate: MatchRule(`^[A-Za-z]+$`, capitalize)},
	{Name: "last_name", Validate: MatchRule(`^[A-Za-z]+$`, capitalize)},
	{Name: "email", Validate: MatchRule(`^[^@]+@[^@]+$`, nil)},
}

// NewUser constructs a User from raw input fields.
func NewUser(input Fields) (*User, error) {
	vals, err := userSchema.Apply("User", input)
	if err != nil {
		return nil, err
	}
	return &User{
		username:  vals["username"].(string),
		firstName: vals["first_name"].(string),
		lastName:  vals["last_name"].(string),
		email:     vals["email"].(string),
		efforts:   make(map[effortKey]*Effort),
	}, nil
}

// Username returns the unique username.
func (u *User) Username() string { return u.username }

// FirstName returns the capitalized first name.
func (u *User) FirstName() string { return u.firstName }

// LastName returns the capitalized last name.
func (u *User) LastName() string { return u.lastName }

// Email returns the email address.
func (u *User) Email() string { return u.email }

// FullName returns the user's first and last name.
func (u *User) FullName() string { return u.firstName + " " + u.lastName }

// ID returns the persisted identifier, zero if not yet saved.
func (u *User) ID() int64 { return u.id }

// SetID assigns the persisted identifier. A second assignment fails.
func (u *User) SetID(id int64) error {
	if u.id != 0 {
		return ErrIDAssigned
	}
	u.id = id
	return nil
}

// SetUsername mutates the username through its validation rule.
func (u *User) SetUsername(username string) error {
	return u.setField("username", username, &u.username)
}

// SetFirstName mutates the first name through its validation rule.
func (u *User) SetFirstName(firstName string) error {
	return u.setField("first_name", firstName, &u.firstName)
}

// SetLastName mutates the last name through its validation rule.
func (u *User) SetLastName(lastName string) error {
	return u.setField("last_name", lastName, &u.lastName)
}

// SetEmail mutates the email through its validation rule.
func (u *User) SetEmail(email string) error {
	return u.setField("email", email, &u.email)
}

func (u *User) setField(name, value string, dst *string) error {
	for _, fr := range userSchema {
		if fr.Name != name {
			continue
		}
		validated, err := fr.Validate(value)
		if err != nil {
			return err
		}
		*dst = validated.(string)
		return nil
	}
	return ErrUnknownField
}

// AddEffort adds an effort to the user's record. Efforts may not overlap in
// time; an exact duplicate overlaps itself and is rejected the same way.
func (u *User) AddEffort(effort *Effort) error {
	for _, e := range u.efforts {
		if effort.Overlaps(e) {
			return ErrEffortOverlap
		}
	}
	u.efforts[effort.key()] = effort
	return nil
}

// RemoveEffort drops the effort matching by value, if present.
func (u *User) RemoveEffort(effort *Effort) {
	delete(u.efforts, effort.key())
}

// HasEffort reports whether an effort equal by value is in the user's record.
func (u *User) HasEffort(effort *Effort) bool {
	_, ok := u.efforts[effort.key()]
	return ok
}

// Efforts returns the user's efforts ordered by start time.
func (u *User) Efforts() []*Effort {
	out := make([]*Effort, 0, len(u.efforts))
	for _, e := range u.efforts {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime().Before(out[j].StartTime())
	})
	return out
}

// TimeWorked returns the total time volunteered across all efforts.
func (u *User) TimeWorked() time.Duration {
	var total time.Duration
	for _, e := range u.efforts {
		total += e.Duration()
	}
	return total
}

// Equal reports value equality over scalar fields and the effort set,
// ignoring identifiers.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u.username != other.username || u.firstName != other.firstName ||
		u.lastName != other.lastName || u.email != other.email {
		return false
	}
	if len(u.efforts) != len(other.efforts) {
		return false
	}
	for key := range u.efforts {
		if _, ok := other.efforts[key]; !ok {
			return false
		}
	}
	return true
}
