package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

const (
	selectUserByIDQuery       = `SELECT id, username, first_name, last_name, email FROM users WHERE id = $1`
	selectUserByUsernameQuery = `SELECT id, username, first_name, last_name, email FROM users WHERE username = $1`
	selectAllUserIDsQuery     = `SELECT id FROM users ORDER BY id`
	insertUserQuery           = `INSERT INTO users (username, first_name, last_name, email) VALUES ($1, $2, $3, $4) RETURNING id`
	deleteUserQuery           = `DELETE FROM users WHERE id = $1`
	deleteUserEffortsQuery    = `DELETE FROM efforts WHERE "user" = $1`
	deleteUserTeamQuery       = `DELETE FROM users2teams WHERE "user" = $1`
	upsertUserTeamQuery       = `INSERT INTO users2teams ("user", team) VALUES ($1, $2) ON CONFLICT ("user") DO UPDATE SET team = EXCLUDED.team`
	selectUserTeamQuery       = `SELECT team FROM users2teams WHERE "user" = $1`
)

// GetUser returns the user matching the selector, with its efforts and their
// locations reconstructed.
func (p *Postgres) GetUser(ctx context.Context, sel entities.UserSelector) (*entities.User, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return p.getUser(ctx, p.db, sel)
}

func (p *Postgres) getUser(ctx context.Context, q querier, sel entities.UserSelector) (*entities.User, error) {
	query, arg := selectUserByIDQuery, any(sel.ID)
	if sel.Username != "" {
		query, arg = selectUserByUsernameQuery, any(sel.Username)
	}

	row := q.QueryRow(ctx, query, arg)
	user, err := p.scanUser(ctx, q, row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// scanUser reconstitutes a user aggregate from a row plus its effort rows.
func (p *Postgres) scanUser(ctx context.Context, q querier, row pgx.Row) (*entities.User, error) {
	var (
		id                                  int64
		username, firstName, lastName, mail string
	)
	if err := row.Scan(&id, &username, &firstName, &lastName, &mail); err != nil {
		return nil, err
	}

	user, err := entities.NewUser(entities.Fields{
		"username":   username,
		"first_name": firstName,
		"last_name":  lastName,
		"email":      mail,
	})
	if err != nil {
		return nil, fmt.Errorf("reconstitute user %d: %w", id, err)
	}
	if err := user.SetID(id); err != nil {
		return nil, err
	}

	efforts, err := p.loadEfforts(ctx, q, id)
	if err != nil {
		return nil, err
	}
	for _, e := range efforts {
		// Stored efforts are guaranteed non-overlapping by the save path.
		if err := user.AddEffort(e); err != nil {
			return nil, fmt.Errorf("restore effort for user %d: %w", id, err)
		}
	}

	return user, nil
}

// AllUsers returns every user aggregate in the repository.
func (p *Postgres) AllUsers(ctx context.Context) ([]*entities.User, error) {
	ids, err := p.collectIDs(ctx, selectAllUserIDsQuery)
	if err != nil {
		return nil, fmt.Errorf("all users: %w", err)
	}

	users := make([]*entities.User, 0, len(ids))
	for _, id := range ids {
		user, err := p.getUser(ctx, p.db, entities.UserSelector{ID: id})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SaveUser persists a user. A user without an identifier is inserted together
// with its initial efforts; one that already has an identifier gets a diff
// update against the currently stored version.
func (p *Postgres) SaveUser(ctx context.Context, user *entities.User) error {
	return p.inTx(ctx, func(tx pgx.Tx) error {
		if user.ID() != 0 {
			return p.updateUser(ctx, tx, user)
		}
		return p.insertUser(ctx, tx, user)
	})
}

func (p *Postgres) insertUser(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	var id int64
	err := tx.QueryRow(ctx, insertUserQuery,
		user.Username(), user.FirstName(), user.LastName(), user.Email(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if err := user.SetID(id); err != nil {
		return err
	}

	for _, e := range user.Efforts() {
		if err := p.saveEffort(ctx, tx, id, e); err != nil {
			return err
		}
	}

	p.log.Infow("user created", "user_id", id, "username", user.Username())
	return nil
}

// updateUser re-fetches the stored user by id and writes only the delta:
// changed scalar fields in one statement, then the effort set difference.
func (p *Postgres) updateUser(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	stored, err := p.getUser(ctx, tx, entities.UserSelector{ID: user.ID()})
	if err != nil {
		return err
	}

	changed := make([]string, 0, 4)
	args := make([]any, 0, 5)
	for _, field := range []struct {
		column     string
		now, prior string
	}{
		{"username", user.Username(), stored.Username()},
		{"first_name", user.FirstName(), stored.FirstName()},
		{"last_name", user.LastName(), stored.LastName()},
		{"email", user.Email(), stored.Email()},
	} {
		if field.now != field.prior {
			changed = append(changed, fmt.Sprintf("%s = $%d", field.column, len(changed)+1))
			args = append(args, field.now)
		}
	}
	if len(changed) > 0 {
		query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
			strings.Join(changed, ", "), len(changed)+1)
		args = append(args, user.ID())
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return entities.ErrUserExists
			}
			return fmt.Errorf("update user: %w", err)
		}
	}

	for _, e := range user.Efforts() {
		if !stored.HasEffort(e) {
			if err := p.saveEffort(ctx, tx, user.ID(), e); err != nil {
				return err
			}
		}
	}
	for _, e := range stored.Efforts() {
		if !user.HasEffort(e) {
			if err := p.deleteEffort(ctx, tx, user.ID(), e); err != nil {
				return err
			}
		}
	}

	return nil
}

// DeleteUser removes the user row and explicitly cascades to its effort and
// membership rows.
func (p *Postgres) DeleteUser(ctx context.Context, user *entities.User) error {
	return p.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteUserEffortsQuery, user.ID()); err != nil {
			return fmt.Errorf("delete user efforts: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteUserTeamQuery, user.ID()); err != nil {
			return fmt.Errorf("delete user membership: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteUserQuery, user.ID()); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		p.log.Infow("user deleted", "user_id", user.ID())
		return nil
	})
}

// SetUserTeam records the user's team membership.
func (p *Postgres) SetUserTeam(ctx context.Context, user *entities.User, teamID int64) error {
	return p.inTx(ctx, func(tx pgx.Tx) error {
		return p.setUserTeam(ctx, tx, user.ID(), teamID)
	})
}

func (p *Postgres) setUserTeam(ctx context.Context, q querier, userID, teamID int64) error {
	if _, err := q.Exec(ctx, upsertUserTeamQuery, userID, teamID); err != nil {
		return fmt.Errorf("set user team: %w", err)
	}
	return nil
}

// GetUserTeam returns the id of the user's team.
func (p *Postgres) GetUserTeam(ctx context.Context, user *entities.User) (int64, error) {
	var teamID int64
	err := p.db.QueryRow(ctx, selectUserTeamQuery, user.ID()).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, entities.ErrTeamNotFound
		}
		return 0, fmt.Errorf("get user team: %w", err)
	}
	return teamID, nil
}
