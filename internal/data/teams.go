package data

import (
	"FoosTableApi/internal/validator"
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrDuplicateTeamName = errors.New("duplicate team name")
	ErrPlayerNotFound    = errors.New("player(s) not found")
)

// Default teams every walk-up ("Anonymous") game is scored against.
const (
	DefaultTeamOneName = "Team1"
	DefaultTeamTwoName = "Team2"
)

// Team has exactly two player slots; player2 is empty for 1v1 play.
type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Player1ID   int64     `json:"player1_id"`
	Player2ID   *int64    `json:"player2_id,omitempty"`
	TotalWins   int64     `json:"total_wins"`
	GamesPlayed int64     `json:"games_played"`
	CreatedAt   time.Time `json:"-"`
	Version     int32     `json:"-"`
}

type TeamModel struct {
	db *sql.DB
}

func (m *TeamModel) Insert(team *Team) error {
	stmt := `
		INSERT INTO teams (name, player1_id, player2_id)
		VALUES ($1, $2, $3)
		RETURNING id, total_wins, games_played, created_at, version`

	args := []any{team.Name, team.Player1ID, team.Player2ID}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, args...).Scan(
		&team.ID,
		&team.TotalWins,
		&team.GamesPlayed,
		&team.CreatedAt,
		&team.Version,
	)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "teams_name_key"`:
			return ErrDuplicateTeamName
		case err.Error() == `pq: insert or update on table "teams" violates foreign key `+
			`constraint "teams_player1_id_fkey"`:
			return ErrPlayerNotFound
		case err.Error() == `pq: insert or update on table "teams" violates foreign key `+
			`constraint "teams_player2_id_fkey"`:
			return ErrPlayerNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *TeamModel) Get(id int64) (*Team, error) {
	stmt := `
		SELECT id, name, player1_id, player2_id, total_wins, games_played, created_at, version
		FROM teams
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var team Team
	err := m.db.QueryRowContext(ctx, stmt, id).Scan(
		&team.ID,
		&team.Name,
		&team.Player1ID,
		&team.Player2ID,
		&team.TotalWins,
		&team.GamesPlayed,
		&team.CreatedAt,
		&team.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &team, nil
}

func (m *TeamModel) GetAll() ([]*Team, error) {
	stmt := `
		SELECT id, name, player1_id, player2_id, total_wins, games_played, created_at, version
		FROM teams
		ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTeams(rows)
}

// Standings orders teams for the leaderboard read: most wins first, games
// played breaking ties.
func (m *TeamModel) Standings() ([]*Team, error) {
	stmt := `
		SELECT id, name, player1_id, player2_id, total_wins, games_played, created_at, version
		FROM teams
		ORDER BY total_wins DESC, games_played ASC, id ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTeams(rows)
}

func scanTeams(rows *sql.Rows) ([]*Team, error) {
	teams := make([]*Team, 0)
	for rows.Next() {
		var team Team
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Player1ID,
			&team.Player2ID,
			&team.TotalWins,
			&team.GamesPlayed,
			&team.CreatedAt,
			&team.Version,
		)
		if err != nil {
			return nil, err
		}
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func getTeamByName(name string, tx *sql.Tx, ctx context.Context) (*Team, error) {
	stmt := `
		SELECT id, name, player1_id, player2_id, total_wins, games_played, created_at, version
		FROM teams
		WHERE name = $1`

	var team Team
	err := tx.QueryRowContext(ctx, stmt, name).Scan(
		&team.ID,
		&team.Name,
		&team.Player1ID,
		&team.Player2ID,
		&team.TotalWins,
		&team.GamesPlayed,
		&team.CreatedAt,
		&team.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &team, nil
}

func ValidateTeam(v *validator.Validator, team *Team) {
	v.Check(team.Name != "", "name", "must be provided")
	v.Check(len(team.Name) <= 20, "name", "must be 20 characters or less")
	v.Check(team.Player1ID > 0, "player1_id", "must be provided")
	if team.Player2ID != nil {
		v.Check(*team.Player2ID > 0, "player2_id", "must be a valid user id")
		v.Check(validator.Unique([]int64{team.Player1ID, *team.Player2ID}), "player2_id", "must differ from player1_id")
	}
}
