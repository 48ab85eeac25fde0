// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/mrbrowning/leaderboard/internal/api"
	"github.com/mrbrowning/leaderboard/internal/entities"
)

// ToAPILocation maps a Location to its transport model.
func ToAPILocation(loc *entities.Location) api.Location {
	return api.Location{
		Latitude:  loc.Latitude(),
		Longitude: loc.Longitude(),
	}
}

// ToAPIEffort maps an Effort to its transport model.
func ToAPIEffort(e *entities.Effort) api.Effort {
	return api.Effort{
		StartTime: e.StartTime().Format(entities.TimeLayout),
		Duration:  int64(e.Duration().Seconds()),
		Location:  ToAPILocation(e.Location()),
	}
}

// ToAPIUser maps a User with its efforts to the transport model.
func ToAPIUser(u *entities.User) api.User {
	efforts := make([]api.Effort, 0, len(u.Efforts()))
	for _, e := range u.Efforts() {
		efforts = append(efforts, ToAPIEffort(e))
	}
	return api.User{
		Username:  u.Username(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
		Efforts:   efforts,
	}
}

// ToAPITeam maps a Team with its members to the transport model.
func ToAPITeam(t *entities.Team) api.Team {
	members := make([]api.User, 0, t.Size())
	for _, m := range t.Members() {
		members = append(members, ToAPIUser(m))
	}
	return api.Team{
		Name:    t.Name(),
		Members: members,
	}
}

// ToAPIUserRank maps one user leaderboard entry to the transport model.
func ToAPIUserRank(r entities.UserRank) api.UserRank {
	return api.UserRank{
		Username:  r.User.Username(),
		FirstName: r.User.FirstName(),
		LastName:  r.User.LastName(),
		Effort:    r.Effort,
		Team:      r.TeamName,
	}
}

// ToAPITeamRank maps one team leaderboard entry to the transport model.
func ToAPITeamRank(r entities.TeamRank) api.TeamRank {
	return api.TeamRank{
		ID:     r.Team.ID(),
		Name:   r.Team.Name(),
		Effort: r.Effort,
	}
}
