package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedRequest)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// User Endpoints
	router.Post("/v1/users", app.RegisterUser)
	router.Get("/v1/users", app.GetAllUsers)
	router.Get("/v1/users/{id}/games", app.GetUserActiveGames)
	router.Get("/v1/leaderboard", app.GetLeaderboard)

	// Table Endpoints
	router.Route("/v1/tables", func(router chi.Router) {
		router.Get("/", app.GetAllTables)
		router.Post("/", app.InsertTable)
		router.Get("/{id}", app.GetTable)
		router.Get("/{id}/start", app.StartTableGame)
		router.Get("/{id}/end", app.EndTableGame)
		router.Get("/{id}/scores", app.GetTableScores)
		router.Get("/{id}/watch", app.WatchTable)
		router.Patch("/{tableId}/teams/{teamId}", app.UpdateTeamGoals)
	})

	// Game Endpoints
	router.Route("/v1/games", func(router chi.Router) {
		router.Get("/", app.GetAllGames)
		router.Post("/", app.InsertGame)
		router.Get("/{id}", app.GetGame)
		router.Post("/{id}/players", app.AttachGamePlayer)
	})

	// Team Endpoints
	router.Get("/v1/teams", app.GetAllTeams)
	router.Post("/v1/teams", app.InsertTeam)
	router.Get("/v1/teams/{id}", app.GetTeam)
	router.Get("/v1/teams/standings", app.GetTeamStandings)

	return router
}
