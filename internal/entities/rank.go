package entities

import "sort"

// UserRank is one leaderboard entry for a user. TeamName is filled by the
// caller once membership is resolved.
type UserRank struct {
	User     *User
	Effort   int64
	TeamName string
}

// TeamRank is one leaderboard entry for a team.
type TeamRank struct {
	Team   *Team
	Effort int64
}

// RankUsers orders users by total effort duration, descending, and truncates
// to limit (limit <= 0 keeps all). Equal totals order by ascending persisted
// id so the ranking is deterministic.
func RankUsers(users []*User, limit int) []UserRank {
	ranks := make([]UserRank, 0, len(users))
	for _, u := range users {
		ranks = append(ranks, UserRank{
			User:   u,
			Effort: int64(u.TimeWorked().Seconds()),
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Effort != ranks[j].Effort {
			return ranks[i].Effort > ranks[j].Effort
		}
		return ranks[i].User.ID() < ranks[j].User.ID()
	})
	return truncate(ranks, limit)
}

// RankTeams orders teams by total effort duration, descending, with the same
// truncation and tie-break rules as RankUsers.
func RankTeams(teams []*Team, limit int) []TeamRank {
	ranks := make([]TeamRank, 0, len(teams))
	for _, t := range teams {
		ranks = append(ranks, TeamRank{
			Team:   t,
			Effort: int64(t.TimeWorked().Seconds()),
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Effort != ranks[j].Effort {
			return ranks[i].Effort > ranks[j].Effort
		}
		return ranks[i].Team.ID() < ranks[j].Team.ID()
	})
	return truncate(ranks, limit)
}

func truncate[T any](ranks []T, limit int) []T {
	if limit > 0 && limit < len(ranks) {
		return ranks[:limit]
	}
	return ranks
}
