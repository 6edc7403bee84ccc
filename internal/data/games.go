package data

import (
	"FoosTableApi/internal/validator"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var ErrNoActiveGame = errors.New("no active game")
var ErrTableNotFound = errors.New("table not found")

// AnonymousGameName is given to walk-up games started straight from a table.
const AnonymousGameName = "Anonymous"

type Game struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	TableID   int64      `json:"fooseballtable_id"`
	WinnerID  *int64     `json:"winner_id"`
	CreatedAt time.Time  `json:"-"`
	Version   int32      `json:"-"`
}

type GameModel struct {
	db *sql.DB
}

// StartOutcome distinguishes the three ways a table start can resolve. A
// table with an active game reports a conflict rather than an error, since
// repeated start requests are expected from wall-mounted buttons.
type StartOutcome int

const (
	StartAlreadyRunning StartOutcome = iota
	StartPendingActivated
	StartAnonymousCreated
)

// StartForTable runs the check-then-act start sequence inside one transaction
// so concurrent starts on the same table cannot both create a game.
func (m *GameModel) StartForTable(tableID int64) (StartOutcome, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	active, err := activeGameExists(tableID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return 0, rollbackErr
		}
		return 0, err
	}
	if active {
		if err := tx.Commit(); err != nil {
			return 0, err
		}
		return StartAlreadyRunning, nil
	}

	pendingID, err := pendingGameID(tableID, tx, ctx)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return 0, rollbackErr
		}
		return 0, err
	}

	if err == nil {
		stmt := `
			UPDATE games
			SET active = true, start_date = now(), version = version + 1
			WHERE id = $1`

		_, err = tx.ExecContext(ctx, stmt, pendingID)
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return 0, rollbackErr
			}
			return 0, err
		}

		if err := tx.Commit(); err != nil {
			return 0, err
		}
		return StartPendingActivated, nil
	}

	err = insertAnonymousGame(tableID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return 0, rollbackErr
		}
		// A concurrent start on the same table won the race; report the
		// same conflict the check above would have.
		if err.Error() == `pq: duplicate key value violates unique constraint `+
			`"games_one_active_per_table_idx"` {
			return StartAlreadyRunning, nil
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return StartAnonymousCreated, nil
}

// EndForTable settles the active game on a table: winner pick, cumulative
// team and player counters, and the game row itself commit as one
// transaction or not at all.
func (m *GameModel) EndForTable(tableID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	game, err := getActiveForTable(tableID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return ErrNoActiveGame
		default:
			return err
		}
	}

	teams, err := getGameTeams(game.ID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}
	if len(teams) != 2 {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return fmt.Errorf("game %d has %d team associations, want 2", game.ID, len(teams))
	}

	goalsTeam1, err := getGoalsForTeam(game.ID, teams[0].ID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}
	goalsTeam2, err := getGoalsForTeam(game.ID, teams[1].ID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	winner := teams[pickWinner(goalsTeam1, goalsTeam2)]

	err = settle(game, teams, winner, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	// Rolling back after a failed commit is a no-op that only masks the
	// real error, so return it directly.
	return tx.Commit()
}

// pickWinner returns the index of the winning team given both goal counts.
// TODO ties currently go to the second team (the source behavior this API
// replaces did the same); confirm intended tie semantics before changing.
func pickWinner(goalsTeam1, goalsTeam2 int64) int {
	if goalsTeam1 > goalsTeam2 {
		return 0
	}
	return 1
}

func settle(game *Game, teams []*Team, winner *Team, tx *sql.Tx, ctx context.Context) error {
	winStmt := `
		UPDATE teams
		SET total_wins = total_wins + 1, version = version + 1
		WHERE id = $1`

	_, err := tx.ExecContext(ctx, winStmt, winner.ID)
	if err != nil {
		return err
	}

	playedStmt := `
		UPDATE teams
		SET games_played = games_played + 1, version = version + 1
		WHERE id = ANY($1)`

	_, err = tx.ExecContext(ctx, playedStmt, pq.Array([]int64{teams[0].ID, teams[1].ID}))
	if err != nil {
		return err
	}

	userWinStmt := `
		UPDATE users
		SET total_wins = total_wins + 1, version = version + 1
		WHERE id = ANY($1)`

	_, err = tx.ExecContext(ctx, userWinStmt, pq.Array(teamPlayerIDs(winner)))
	if err != nil {
		return err
	}

	userPlayedStmt := `
		UPDATE users
		SET games_played = games_played + 1, version = version + 1
		WHERE id = ANY($1)`

	allPlayers := append(teamPlayerIDs(teams[0]), teamPlayerIDs(teams[1])...)
	_, err = tx.ExecContext(ctx, userPlayedStmt, pq.Array(allPlayers))
	if err != nil {
		return err
	}

	gameStmt := `
		UPDATE games
		SET active = false, end_date = now(), winner_id = $1, version = version + 1
		WHERE id = $2 AND version = $3`

	result, err := tx.ExecContext(ctx, gameStmt, winner.ID, game.ID, game.Version)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEditConflict
	}

	return nil
}

// teamPlayerIDs lists a team's player user ids, skipping the optional second
// slot when empty.
func teamPlayerIDs(team *Team) []int64 {
	ids := []int64{team.Player1ID}
	if team.Player2ID != nil {
		ids = append(ids, *team.Player2ID)
	}
	return ids
}

// Insert creates a pending game (inactive, no start date) for two known
// teams; the table-side start request activates it later.
func (m *GameModel) Insert(game *Game, team1ID, team2ID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt := `
		INSERT INTO games (name, active, fooseballtable_id)
		VALUES ($1, false, $2)
		RETURNING id, active, created_at, version`

	err = tx.QueryRowContext(ctx, stmt, game.Name, game.TableID).Scan(
		&game.ID,
		&game.Active,
		&game.CreatedAt,
		&game.Version,
	)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		switch {
		case err.Error() == `pq: insert or update on table "games" violates foreign key `+
			`constraint "games_fooseballtable_id_fkey"`:
			return ErrTableNotFound
		default:
			return err
		}
	}

	err = attachGameTeams(game.ID, team1ID, team2ID, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	return tx.Commit()
}

func (m *GameModel) Get(id int64) (*Game, error) {
	stmt := `
		SELECT id, name, active, start_date, end_date, fooseballtable_id, winner_id, created_at,
			version
		FROM games
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var game Game
	err := m.db.QueryRowContext(ctx, stmt, id).Scan(
		&game.ID,
		&game.Name,
		&game.Active,
		&game.StartDate,
		&game.EndDate,
		&game.TableID,
		&game.WinnerID,
		&game.CreatedAt,
		&game.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &game, nil
}

func (m *GameModel) GetAll() ([]*Game, error) {
	stmt := `
		SELECT id, name, active, start_date, end_date, fooseballtable_id, winner_id, created_at,
			version
		FROM games
		ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetActiveForTable serves the score reads: the single running game on a
// table, or ErrRecordNotFound when the table is idle.
func (m *GameModel) GetActiveForTable(tableID int64) (*Game, error) {
	stmt := `
		SELECT id, name, active, start_date, end_date, fooseballtable_id, winner_id, created_at,
			version
		FROM games
		WHERE fooseballtable_id = $1 AND active = true`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var game Game
	err := m.db.QueryRowContext(ctx, stmt, tableID).Scan(
		&game.ID,
		&game.Name,
		&game.Active,
		&game.StartDate,
		&game.EndDate,
		&game.TableID,
		&game.WinnerID,
		&game.CreatedAt,
		&game.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &game, nil
}

// GetActiveForUser lists the active games a user is attached to through the
// game_user association, replacing the original's ambient auth lookup with an
// explicit user id.
func (m *GameModel) GetActiveForUser(userID int64) ([]*Game, error) {
	stmt := `
		SELECT games.id, games.name, games.active, games.start_date, games.end_date,
			games.fooseballtable_id, games.winner_id, games.created_at, games.version
		FROM games
		INNER JOIN game_user ON game_user.game_id = games.id
		WHERE games.active = true AND game_user.user_id = $1
		ORDER BY games.id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]*Game, error) {
	games := make([]*Game, 0)
	for rows.Next() {
		var game Game
		err := rows.Scan(
			&game.ID,
			&game.Name,
			&game.Active,
			&game.StartDate,
			&game.EndDate,
			&game.TableID,
			&game.WinnerID,
			&game.CreatedAt,
			&game.Version,
		)
		if err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return games, nil
}

func activeGameExists(tableID int64, tx *sql.Tx, ctx context.Context) (bool, error) {
	stmt := `
		SELECT EXISTS (
			SELECT 1 FROM games
			WHERE fooseballtable_id = $1 AND active = true
		)`

	var exists bool
	err := tx.QueryRowContext(ctx, stmt, tableID).Scan(&exists)
	return exists, err
}

func pendingGameID(tableID int64, tx *sql.Tx, ctx context.Context) (int64, error) {
	stmt := `
		SELECT id FROM games
		WHERE fooseballtable_id = $1 AND start_date IS NULL
		ORDER BY id
		LIMIT 1`

	var id int64
	err := tx.QueryRowContext(ctx, stmt, tableID).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return id, nil
}

func insertAnonymousGame(tableID int64, tx *sql.Tx, ctx context.Context) error {
	team1, err := getTeamByName(DefaultTeamOneName, tx, ctx)
	if err != nil {
		return err
	}
	team2, err := getTeamByName(DefaultTeamTwoName, tx, ctx)
	if err != nil {
		return err
	}

	stmt := `
		INSERT INTO games (name, active, start_date, fooseballtable_id)
		VALUES ($1, true, now(), $2)
		RETURNING id`

	var gameID int64
	err = tx.QueryRowContext(ctx, stmt, AnonymousGameName, tableID).Scan(&gameID)
	if err != nil {
		return err
	}

	return attachGameTeams(gameID, team1.ID, team2.ID, tx, ctx)
}

func getActiveForTable(tableID int64, tx *sql.Tx, ctx context.Context) (*Game, error) {
	stmt := `
		SELECT id, name, active, start_date, end_date, fooseballtable_id, winner_id, created_at,
			version
		FROM games
		WHERE fooseballtable_id = $1 AND active = true
		FOR UPDATE`

	var game Game
	err := tx.QueryRowContext(ctx, stmt, tableID).Scan(
		&game.ID,
		&game.Name,
		&game.Active,
		&game.StartDate,
		&game.EndDate,
		&game.TableID,
		&game.WinnerID,
		&game.CreatedAt,
		&game.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &game, nil
}

func ValidateGame(v *validator.Validator, game *Game, uniqueCode string, team1ID, team2ID int64) {
	v.Check(game.Name != "", "name", "must be provided")
	v.Check(len(game.Name) <= 50, "name", "must be 50 characters or less")
	v.Check(uniqueCode != "", "unique_code", "must be provided")
	v.Check(len(uniqueCode) == 4, "unique_code", "must be exactly 4 characters")
	v.Check(team1ID > 0, "team1_id", "must be provided")
	v.Check(team2ID > 0, "team2_id", "must be provided")
	v.Check(validator.Unique([]int64{team1ID, team2ID}), "team2_id", "must differ from team1_id")
}
