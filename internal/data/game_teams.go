package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// GameTeam is the association row linking a game to one of its two teams.
// Goals belong to this relationship, not to the team itself.
type GameTeam struct {
	GameID int64 `json:"game_id"`
	TeamID int64 `json:"team_id"`
	Goals  int64 `json:"goals"`
}

type GameTeamModel struct {
	db *sql.DB
}

// GetGoals is the scoring primitive: the goal count one team holds in one
// game. Missing associations surface as ErrRecordNotFound so settlement can
// treat them as a checked failure.
func (m *GameTeamModel) GetGoals(gameID, teamID int64) (int64, error) {
	stmt := `
		SELECT goals FROM game_team
		WHERE game_id = $1 AND team_id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var goals int64
	err := m.db.QueryRowContext(ctx, stmt, gameID, teamID).Scan(&goals)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return goals, nil
}

// IncrementGoals adds delta goals for a team in a game and returns the new
// total. Each scoring event from the table hardware lands here.
func (m *GameTeamModel) IncrementGoals(gameID, teamID, delta int64) (int64, error) {
	stmt := `
		UPDATE game_team
		SET goals = goals + $1
		WHERE game_id = $2 AND team_id = $3
		RETURNING goals`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var goals int64
	err := m.db.QueryRowContext(ctx, stmt, delta, gameID, teamID).Scan(&goals)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return goals, nil
}

// ScoreRecord is the flat projection served for each of a game's two teams.
type ScoreRecord struct {
	TeamName  string     `json:"team_name"`
	GameName  string     `json:"game_name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	TableID   int64      `json:"table_id"`
	Goals     int64      `json:"goals"`
}

// ScoresForGame returns one record per associated team, in stored
// association order.
func (m *GameTeamModel) ScoresForGame(game *Game) ([]*ScoreRecord, error) {
	stmt := `
		SELECT teams.name, game_team.goals
		FROM game_team
		INNER JOIN teams ON teams.id = game_team.team_id
		WHERE game_team.game_id = $1
		ORDER BY game_team.id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt, game.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]*ScoreRecord, 0, 2)
	for rows.Next() {
		record := ScoreRecord{
			GameName:  game.Name,
			StartDate: game.StartDate,
			EndDate:   game.EndDate,
			TableID:   game.TableID,
		}
		err := rows.Scan(&record.TeamName, &record.Goals)
		if err != nil {
			return nil, err
		}
		scores = append(scores, &record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}

func attachGameTeams(gameID, team1ID, team2ID int64, tx *sql.Tx, ctx context.Context) error {
	stmt := `
		INSERT INTO game_team (game_id, team_id)
		VALUES ($1, $2), ($1, $3)`

	_, err := tx.ExecContext(ctx, stmt, gameID, team1ID, team2ID)
	if err != nil {
		switch {
		case err.Error() == `pq: insert or update on table "game_team" violates foreign key `+
			`constraint "game_team_team_id_fkey"`:
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// getGameTeams loads a game's teams in stored association order; settlement
// relies on that order for the tie-break.
func getGameTeams(gameID int64, tx *sql.Tx, ctx context.Context) ([]*Team, error) {
	stmt := `
		SELECT teams.id, teams.name, teams.player1_id, teams.player2_id, teams.total_wins,
			teams.games_played, teams.created_at, teams.version
		FROM game_team
		INNER JOIN teams ON teams.id = game_team.team_id
		WHERE game_team.game_id = $1
		ORDER BY game_team.id`

	rows, err := tx.QueryContext(ctx, stmt, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTeams(rows)
}

func getGoalsForTeam(gameID, teamID int64, tx *sql.Tx, ctx context.Context) (int64, error) {
	stmt := `
		SELECT goals FROM game_team
		WHERE game_id = $1 AND team_id = $2`

	var goals int64
	err := tx.QueryRowContext(ctx, stmt, gameID, teamID).Scan(&goals)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return goals, nil
}
