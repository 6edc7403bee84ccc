package main

import (
	"FoosTableApi/internal/data"
	"FoosTableApi/internal/validator"
	"errors"
	"net/http"
)

// UpdateTeamGoals records scoring events from table hardware: it bumps the
// goals on the active game's association row for one team and notifies
// watchers.
func (app *application) UpdateTeamGoals(w http.ResponseWriter, r *http.Request) {
	tableID, err := app.readIDParam(r, "tableId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}
	teamID, err := app.readIDParam(r, "teamId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input struct {
		Goals int64 `json:"goals"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.Goals != 0, "goals", "must be provided and non-zero")
	v.Check(input.Goals > 0, "goals", "must be positive; goal counts never decrease")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	game, err := app.models.Games.GetActiveForTable(tableID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "No game running on this table")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	goals, err := app.models.GameTeams.IncrementGoals(game.ID, teamID, input.Goals)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "Team is not playing in the current game")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.broadcastScores(game)

	gameTeam := data.GameTeam{
		GameID: game.ID,
		TeamID: teamID,
		Goals:  goals,
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": gameTeam}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
