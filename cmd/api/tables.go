package main

import (
	"FoosTableApi/internal/data"
	"FoosTableApi/internal/validator"
	"errors"
	"net/http"
)

func (app *application) GetAllTables(w http.ResponseWriter, r *http.Request) {
	tables, err := app.models.Tables.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": tables}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTable(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	table, err := app.models.Tables.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "Fooseball table doesn't exist")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": table}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// InsertTable provisions a new physical table and hands back its generated
// join code.
func (app *application) InsertTable(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	table := &data.Table{Name: input.Name}

	v := validator.New()
	if data.ValidateTable(v, table); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Tables.Insert(table)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"data": table}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) StartTableGame(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	table, err := app.models.Tables.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "Fooseball table doesn't exist")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	outcome, err := app.models.Games.StartForTable(table.ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			// The well-known default teams are missing from the store.
			app.serverErrorResponse(w, r, errors.New("default teams are not provisioned"))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var message string
	switch outcome {
	case data.StartAlreadyRunning:
		app.gameStateResponse(w, r, "Game is already running")
		return
	case data.StartPendingActivated:
		message = "Game started successfully"
	case data.StartAnonymousCreated:
		message = "Anonymous Game started successfully"
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": message}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) EndTableGame(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Games.EndForTable(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoActiveGame):
			app.gameStateResponse(w, r, "No Game is running")
		case errors.Is(err, data.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.closeTableHub(id)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Game ended successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTableScores(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	game, err := app.models.Games.GetActiveForTable(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "No game running on this table")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	scores, err := app.models.GameTeams.ScoresForGame(game)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": scores}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
