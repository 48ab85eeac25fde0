package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

const (
	selectTeamByIDQuery   = `SELECT id, name FROM teams WHERE id = $1`
	selectTeamByNameQuery = `SELECT id, name FROM teams WHERE name = $1`
	selectAllTeamIDsQuery = `SELECT id FROM teams ORDER BY id`
	insertTeamQuery       = `INSERT INTO teams (name) VALUES ($1) RETURNING id`
	updateTeamNameQuery   = `UPDATE teams SET name = $1 WHERE id = $2`
	deleteTeamQuery       = `DELETE FROM teams WHERE id = $1`
	selectTeamMemberIDs   = `SELECT "user" FROM users2teams WHERE team = $1 ORDER BY "user"`
)

// GetTeam returns the team matching the selector with its membership
// populated through the user read path.
func (p *Postgres) GetTeam(ctx context.Context, sel entities.TeamSelector) (*entities.Team, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return p.getTeam(ctx, p.db, sel)
}

func (p *Postgres) getTeam(ctx context.Context, q querier, sel entities.TeamSelector) (*entities.Team, error) {
	query, arg := selectTeamByIDQuery, any(sel.ID)
	if sel.Name != "" {
		query, arg = selectTeamByNameQuery, any(sel.Name)
	}

	var (
		id   int64
		name string
	)
	if err := q.QueryRow(ctx, query, arg).Scan(&id, &name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	team, err := entities.NewTeam(entities.Fields{"name": name})
	if err != nil {
		return nil, fmt.Errorf("reconstitute team %d: %w", id, err)
	}
	if err := team.SetID(id); err != nil {
		return nil, err
	}

	memberIDs, err := p.collectIDsQ(ctx, q, selectTeamMemberIDs, id)
	if err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}
	for _, userID := range memberIDs {
		user, err := p.getUser(ctx, q, entities.UserSelector{ID: userID})
		if err != nil {
			return nil, err
		}
		if err := team.AddUser(user); err != nil {
			return nil, fmt.Errorf("restore member %d: %w", userID, err)
		}
	}

	return team, nil
}

// AllTeams returns every team aggregate in the repository.
func (p *Postgres) AllTeams(ctx context.Context) ([]*entities.Team, error) {
	ids, err := p.collectIDs(ctx, selectAllTeamIDsQuery)
	if err != nil {
		return nil, fmt.Errorf("all teams: %w", err)
	}

	teams := make([]*entities.Team, 0, len(ids))
	for _, id := range ids {
		team, err := p.getTeam(ctx, p.db, entities.TeamSelector{ID: id})
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// SaveTeam persists a team. A team without an identifier is inserted and all
// its current members saved through the user persistence path; one that
// already has an identifier gets a diff update.
func (p *Postgres) SaveTeam(ctx context.Context, team *entities.Team) error {
	return p.inTx(ctx, func(tx pgx.Tx) error {
		if team.ID() != 0 {
			return p.updateTeam(ctx, tx, team)
		}
		return p.insertTeam(ctx, tx, team)
	})
}

func (p *Postgres) insertTeam(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	var id int64
	if err := tx.QueryRow(ctx, insertTeamQuery, team.Name()).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrTeamExists
		}
		return fmt.Errorf("insert team: %w", err)
	}
	if err := team.SetID(id); err != nil {
		return err
	}

	for _, member := range team.Members() {
		if err := p.saveMember(ctx, tx, member, id); err != nil {
			return err
		}
	}

	p.log.Infow("team created", "team_id", id, "name", team.Name(), "members", team.Size())
	return nil
}

// updateTeam re-fetches the stored team and writes only the delta: the name
// column when changed, and newly added members. Members dropped from the
// in-memory team are deliberately not evicted from storage; no
// membership-removal operation exists.
func (p *Postgres) updateTeam(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	stored, err := p.getTeam(ctx, tx, entities.TeamSelector{ID: team.ID()})
	if err != nil {
		return err
	}

	if team.Name() != stored.Name() {
		if _, err := tx.Exec(ctx, updateTeamNameQuery, team.Name(), team.ID()); err != nil {
			if isUniqueViolation(err) {
				return entities.ErrTeamExists
			}
			return fmt.Errorf("update team name: %w", err)
		}
	}

	for _, member := range team.Members() {
		if !stored.HasUser(member) {
			if err := p.saveMember(ctx, tx, member, team.ID()); err != nil {
				return err
			}
		}
	}

	return nil
}

// saveMember persists a member inside the team's transaction and records its
// membership.
func (p *Postgres) saveMember(ctx context.Context, tx pgx.Tx, member *entities.User, teamID int64) error {
	if member.ID() == 0 {
		if err := p.insertUser(ctx, tx, member); err != nil {
			return err
		}
	} else {
		if err := p.updateUser(ctx, tx, member); err != nil {
			return err
		}
	}
	return p.setUserTeam(ctx, tx, member.ID(), teamID)
}

// DeleteTeam removes an empty team. Teams that still have members cannot be
// deleted.
func (p *Postgres) DeleteTeam(ctx context.Context, team *entities.Team) error {
	if team.Size() > 0 {
		return entities.ErrTeamNotEmpty
	}
	return p.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteTeamQuery, team.ID()); err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		p.log.Infow("team deleted", "team_id", team.ID(), "name", team.Name())
		return nil
	})
}
