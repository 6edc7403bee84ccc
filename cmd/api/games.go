package main

import (
	"FoosTableApi/internal/data"
	"FoosTableApi/internal/validator"
	"errors"
	"net/http"
)

func (app *application) GetAllGames(w http.ResponseWriter, r *http.Request) {
	games, err := app.models.Games.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": games}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// InsertGame pre-registers a game between two known teams on a table picked
// by join code. The game stays pending until the table-side start request.
func (app *application) InsertGame(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       string `json:"name"`
		UniqueCode string `json:"unique_code"`
		Team1ID    int64  `json:"team1_id"`
		Team2ID    int64  `json:"team2_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	game := &data.Game{Name: input.Name}

	v := validator.New()
	if data.ValidateGame(v, game, input.UniqueCode, input.Team1ID, input.Team2ID); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	table, err := app.models.Tables.GetByCode(input.UniqueCode)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			v.AddError("unique_code", "Table doesnt exist")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	game.TableID = table.ID

	err = app.models.Games.Insert(game, input.Team1ID, input.Team2ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			v.AddError("team1_id", "one or both teams could not be found")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Game made successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetGame serves the elimination-mode game detail: the raw game row, players
// still alive, the winner once only one remains, and the five deadliest
// players.
func (app *application) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	game, err := app.models.Games.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	players, err := app.models.GameUsers.GetForGame(game.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": envelope{
		"game_data":    game,
		"alive_player": data.AlivePlayers(players),
		"winner":       data.EliminationWinner(players),
		"most_killed":  data.MostKilled(players, 5),
	}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// AttachGamePlayer adds a user to a game's elimination roster. The caller's
// identity arrives explicitly in the body rather than from ambient auth
// state.
func (app *application) AttachGamePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input struct {
		UserID int64 `json:"user_id"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.UserID > 0, "user_id", "must be provided")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.GameUsers.Attach(id, input.UserID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrDuplicateGamePlayer):
			v.AddError("user_id", "already attached to this game")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "Player added to game"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
