package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/mrbrowning/leaderboard/config"
	"github.com/mrbrowning/leaderboard/internal/entities"

	"github.com/jackc/pgx/v5"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUser(t *testing.T, username string) *entities.User {
	t.Helper()
	u, err := entities.NewUser(entities.Fields{
		"username":   username,
		"first_name": "alice",
		"last_name":  "smith",
		"email":      username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func newTeam(t *testing.T, name string) *entities.Team {
	t.Helper()
	team, err := entities.NewTeam(entities.Fields{"name": name})
	require.NoError(t, err)
	return team
}

func newEffort(t *testing.T, start time.Time, dur time.Duration, lat, lon float64) *entities.Effort {
	t.Helper()
	e, err := entities.NewEffort(entities.Fields{
		"start_time": start,
		"duration":   dur,
		"latitude":   lat,
		"longitude":  lon,
	})
	require.NoError(t, err)
	return e
}

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	team := newTeam(t, "RedTeam")
	require.NoError(t, repo.SaveTeam(ctx, team))
	require.NotZero(t, team.ID())

	user := newUser(t, "asmith")
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, user.AddEffort(newEffort(t, start, 1000*time.Second, 41.3, 2.1)))

	require.NoError(t, repo.SaveUser(ctx, user))
	require.NotZero(t, user.ID())
	require.NoError(t, repo.SetUserTeam(ctx, user, team.ID()))

	fetched, err := repo.GetUser(ctx, entities.UserSelector{ID: user.ID()})
	require.NoError(t, err)
	require.Equal(t, "asmith", fetched.Username())
	require.Equal(t, "Alice", fetched.FirstName())
	require.True(t, fetched.Equal(user))
	require.Equal(t, 1000*time.Second, fetched.TimeWorked())

	byName, err := repo.GetUser(ctx, entities.UserSelector{Username: "asmith"})
	require.NoError(t, err)
	require.Equal(t, fetched.ID(), byName.ID())

	teamID, err := repo.GetUserTeam(ctx, fetched)
	require.NoError(t, err)
	require.Equal(t, team.ID(), teamID)

	withMember, err := repo.GetTeam(ctx, entities.TeamSelector{ID: team.ID()})
	require.NoError(t, err)
	require.Equal(t, "RedTeam", withMember.Name())
	require.Equal(t, 1, withMember.Size())
	require.Equal(t, 1000*time.Second, withMember.TimeWorked())

	users, err := repo.AllUsers(ctx)
	require.NoError(t, err)
	ranks := entities.RankUsers(users, 1)
	require.Len(t, ranks, 1)
	require.Equal(t, "asmith", ranks[0].User.Username())
	require.Equal(t, int64(1000), ranks[0].Effort)
}

func TestSaveUserDuplicateUsernameIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	require.NoError(t, repo.SaveUser(ctx, newUser(t, "asmith")))

	err := repo.SaveUser(ctx, newUser(t, "asmith"))
	require.ErrorIs(t, err, entities.ErrUserExists)
	require.ErrorIs(t, err, entities.ErrConstraint)
}

func TestSaveUserDiffUpdateIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	user := newUser(t, "asmith")
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first := newEffort(t, start, time.Hour, 41.3, 2.1)
	require.NoError(t, user.AddEffort(first))
	require.NoError(t, repo.SaveUser(ctx, user))

	// Saving an unchanged user is a no-op.
	require.NoError(t, repo.SaveUser(ctx, user))

	require.NoError(t, user.SetFirstName("augusta"))
	require.NoError(t, user.AddEffort(newEffort(t, start.Add(2*time.Hour), 30*time.Minute, 41.3, 2.1)))
	user.RemoveEffort(first)
	require.NoError(t, repo.SaveUser(ctx, user))

	fetched, err := repo.GetUser(ctx, entities.UserSelector{ID: user.ID()})
	require.NoError(t, err)
	require.Equal(t, "Augusta", fetched.FirstName())
	require.Equal(t, "Smith", fetched.LastName())
	efforts := fetched.Efforts()
	require.Len(t, efforts, 1)
	require.Equal(t, start.Add(2*time.Hour).Unix(), efforts[0].StartTime().Unix())
	require.Equal(t, 30*time.Minute, efforts[0].Duration())
}

func TestLocationDedupIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	user := newUser(t, "asmith")
	require.NoError(t, user.AddEffort(newEffort(t, start, time.Hour, 41.3, 2.1)))
	require.NoError(t, user.AddEffort(newEffort(t, start.Add(2*time.Hour), time.Hour, 41.3, 2.1)))
	require.NoError(t, repo.SaveUser(ctx, user))

	other := newUser(t, "bjones")
	require.NoError(t, other.AddEffort(newEffort(t, start, time.Hour, 41.3, 2.1)))
	require.NoError(t, repo.SaveUser(ctx, other))

	fetched, err := repo.GetUser(ctx, entities.UserSelector{ID: user.ID()})
	require.NoError(t, err)
	efforts := fetched.Efforts()
	require.Len(t, efforts, 2)
	require.Equal(t, efforts[0].Location().ID(), efforts[1].Location().ID())

	otherFetched, err := repo.GetUser(ctx, entities.UserSelector{ID: other.ID()})
	require.NoError(t, err)
	require.Equal(t, efforts[0].Location().ID(), otherFetched.Efforts()[0].Location().ID())
}

func TestSaveEffortDuplicateNoOpIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	user := newUser(t, "asmith")
	require.NoError(t, repo.SaveUser(ctx, user))

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	err := repo.inTx(ctx, func(tx pgx.Tx) error {
		if err := repo.saveEffort(ctx, tx, user.ID(), newEffort(t, start, time.Hour, 41.3, 2.1)); err != nil {
			return err
		}
		// Same value again: the insert must be a silent no-op.
		return repo.saveEffort(ctx, tx, user.ID(), newEffort(t, start, time.Hour, 41.3, 2.1))
	})
	require.NoError(t, err)

	fetched, err := repo.GetUser(ctx, entities.UserSelector{ID: user.ID()})
	require.NoError(t, err)
	require.Len(t, fetched.Efforts(), 1)
}

func TestTeamLifecycleIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	team := newTeam(t, "RedTeam")
	require.NoError(t, team.AddUser(newUser(t, "asmith")))
	require.NoError(t, repo.SaveTeam(ctx, team))

	require.ErrorIs(t, repo.SaveTeam(ctx, newTeam(t, "RedTeam")), entities.ErrTeamExists)

	fetched, err := repo.GetTeam(ctx, entities.TeamSelector{Name: "RedTeam"})
	require.NoError(t, err)
	require.Equal(t, 1, fetched.Size())

	require.NoError(t, fetched.SetName("BlueTeam"))
	require.NoError(t, fetched.AddUser(newUser(t, "bjones")))
	require.NoError(t, repo.SaveTeam(ctx, fetched))

	renamed, err := repo.GetTeam(ctx, entities.TeamSelector{Name: "BlueTeam"})
	require.NoError(t, err)
	require.Equal(t, 2, renamed.Size())

	require.ErrorIs(t, repo.DeleteTeam(ctx, renamed), entities.ErrTeamNotEmpty)

	empty := newTeam(t, "GreenTeam")
	require.NoError(t, repo.SaveTeam(ctx, empty))
	require.NoError(t, repo.DeleteTeam(ctx, empty))
	_, err = repo.GetTeam(ctx, entities.TeamSelector{Name: "GreenTeam"})
	require.ErrorIs(t, err, entities.ErrTeamNotFound)
}

func TestDeleteUserIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	team := newTeam(t, "RedTeam")
	require.NoError(t, repo.SaveTeam(ctx, team))

	user := newUser(t, "asmith")
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, user.AddEffort(newEffort(t, start, time.Hour, 41.3, 2.1)))
	require.NoError(t, repo.SaveUser(ctx, user))
	require.NoError(t, repo.SetUserTeam(ctx, user, team.ID()))

	require.NoError(t, repo.DeleteUser(ctx, user))

	_, err := repo.GetUser(ctx, entities.UserSelector{ID: user.ID()})
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	emptied, err := repo.GetTeam(ctx, entities.TeamSelector{ID: team.ID()})
	require.NoError(t, err)
	require.Zero(t, emptied.Size())
}

func TestGetUserTeamMissingIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	user := newUser(t, "asmith")
	require.NoError(t, repo.SaveUser(ctx, user))

	_, err := repo.GetUserTeam(ctx, user)
	require.ErrorIs(t, err, entities.ErrTeamNotFound)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=leaderboard_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "leaderboard_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=leaderboard_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
