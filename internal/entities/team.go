package entities

import (
	"sort"
	"time"
)

// Team aggregates volunteers under a team name. It owns the membership
// relation keyed by username, not user identity: deleting a team never
// deletes its users.
type Team struct {
	id      int64
	name    string
	members map[string]*User
}

var teamSchema = Schema{
	{Name: "name", Validate: MatchRule(`^[A-Za-z][A-Za-z0-9]`, nil)},
}

// NewTeam constructs a Team from raw input fields.
func NewTeam(input Fields) (*Team, error) {
	vals, err := teamSchema.Apply("Team", input)
	if err != nil {
		return nil, err
	}
	return &Team{
		name:    vals["name"].(string),
		members: make(map[string]*User),
	}, nil
}

// Name returns the team name.
func (t *Team) Name() string { return t.name }

// SetName mutates the team name through its validation rule.
func (t *Team) SetName(name string) error {
	validated, err := teamSchema[0].Validate(name)
	if err != nil {
		return err
	}
	t.name = validated.(string)
	return nil
}

// ID returns the persisted identifier, zero if not yet saved.
func (t *Team) ID() int64 { return t.id }

// SetID assigns the persisted identifier. A second assignment fails.
func (t *Team) SetID(id int64) error {
	if t.id != 0 {
		return ErrIDAssigned
	}
	t.id = id
	return nil
}

// AddUser adds a user to the team. No two members may share a username.
func (t *Team) AddUser(user *User) error {
	if _, ok := t.members[user.Username()]; ok {
		return ErrDuplicateMember
	}
	t.members[user.Username()] = user
	return nil
}

// HasUser reports whether a user with the same username is on the team.
func (t *Team) HasUser(user *User) bool {
	_, ok := t.members[user.Username()]
	return ok
}

// Members returns the team's users ordered by username.
func (t *Team) Members() []*User {
	out := make([]*User, 0, len(t.members))
	for _, u := range t.members {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Username() < out[j].Username()
	})
	return out
}

// Size returns the member count.
func (t *Team) Size() int { return len(t.members) }

// TimeWorked returns the total time volunteered by all members.
func (t *Team) TimeWorked() time.Duration {
	var total time.Duration
	for _, u := range t.members {
		total += u.TimeWorked()
	}
	return total
}
