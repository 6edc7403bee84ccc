package main

import (
	"FoosTableApi/internal/data"
	"FoosTableApi/internal/watchhub"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WatchTable upgrades the connection to a websocket and streams score
// snapshots for the table whenever a goal is recorded.
func (app *application) WatchTable(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	_, err = app.models.Tables.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundMessageResponse(w, r, "Fooseball table doesn't exist")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	hub := app.hubForTable(id)
	hub.Join(conn)
}

func (app *application) hubForTable(tableID int64) *watchhub.Hub {
	app.mu.Lock()
	defer app.mu.Unlock()

	hub, ok := app.tableWatch[tableID]
	if !ok {
		hub = watchhub.NewHub(tableID)
		app.tableWatch[tableID] = hub
		go hub.Run()
	}

	return hub
}

// broadcastScores pushes the active game's current score records to anyone
// watching the table. Dropped silently when nobody is watching.
func (app *application) broadcastScores(game *data.Game) {
	app.mu.Lock()
	hub, ok := app.tableWatch[game.TableID]
	app.mu.Unlock()
	if !ok {
		return
	}

	scores, err := app.models.GameTeams.ScoresForGame(game)
	if err != nil {
		app.logger.PrintError(err, nil)
		return
	}

	msg, err := json.Marshal(envelope{"data": scores})
	if err != nil {
		app.logger.PrintError(err, nil)
		return
	}

	hub.Send(msg)
}

func (app *application) closeTableHub(tableID int64) {
	app.mu.Lock()
	hub, ok := app.tableWatch[tableID]
	if ok {
		delete(app.tableWatch, tableID)
	}
	app.mu.Unlock()
	if !ok {
		return
	}

	hub.Stop(errGameEnded)
}

var errGameEnded = errors.New("game ended")
