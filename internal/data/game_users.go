package data

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"
)

var ErrDuplicateGamePlayer = errors.New("player already attached to game")

// GamePlayer is a user joined with their per-game elimination attributes.
type GamePlayer struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Kills     int64  `json:"kills"`
	Alive     bool   `json:"alive"`
}

type GameUserModel struct {
	db *sql.DB
}

func (m *GameUserModel) Attach(gameID, userID int64) error {
	stmt := `
		INSERT INTO game_user (game_id, user_id)
		VALUES ($1, $2)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := m.db.ExecContext(ctx, stmt, gameID, userID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint `+
			`"game_user_game_id_user_id_key"`:
			return ErrDuplicateGamePlayer
		case err.Error() == `pq: insert or update on table "game_user" violates foreign key `+
			`constraint "game_user_game_id_fkey"`:
			return ErrRecordNotFound
		case err.Error() == `pq: insert or update on table "game_user" violates foreign key `+
			`constraint "game_user_user_id_fkey"`:
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// GetForGame returns a game's players in stored association order.
func (m *GameUserModel) GetForGame(gameID int64) ([]*GamePlayer, error) {
	stmt := `
		SELECT users.id, users.first_name, users.last_name, game_user.kills, game_user.alive
		FROM game_user
		INNER JOIN users ON users.id = game_user.user_id
		WHERE game_user.game_id = $1
		ORDER BY game_user.id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*GamePlayer, 0)
	for rows.Next() {
		var player GamePlayer
		err := rows.Scan(
			&player.UserID,
			&player.FirstName,
			&player.LastName,
			&player.Kills,
			&player.Alive,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

// AlivePlayers filters the players still standing in an elimination game.
func AlivePlayers(players []*GamePlayer) []*GamePlayer {
	alive := make([]*GamePlayer, 0)
	for _, player := range players {
		if player.Alive {
			alive = append(alive, player)
		}
	}
	return alive
}

// EliminationWinner is the sole alive player's first name, or nil while two
// or more players remain.
func EliminationWinner(players []*GamePlayer) *string {
	alive := AlivePlayers(players)
	if len(alive) != 1 {
		return nil
	}
	return &alive[0].FirstName
}

// MostKilled ranks players by kills descending, fetch order breaking ties,
// and keeps the top n.
func MostKilled(players []*GamePlayer, n int) []*GamePlayer {
	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, func(a, b *GamePlayer) int {
		switch {
		case b.Kills > a.Kills:
			return 1
		case b.Kills < a.Kills:
			return -1
		default:
			return 0
		}
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
