package data

import (
	"database/sql"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrEditConflict = errors.New("edit conflict")

type Models struct {
	Tables    TableModel
	Teams     TeamModel
	Users     UserModel
	Games     GameModel
	GameTeams GameTeamModel
	GameUsers GameUserModel
}

func NewModels(initDb *sql.DB) Models {
	return Models{
		Tables:    TableModel{db: initDb},
		Teams:     TeamModel{db: initDb},
		Users:     UserModel{db: initDb},
		Games:     GameModel{db: initDb},
		GameTeams: GameTeamModel{db: initDb},
		GameUsers: GameUserModel{db: initDb},
	}
}
