package app

import (
	"github.com/sweeplab/minesweeper-server/internal/handlers"
	"github.com/sweeplab/minesweeper-server/internal/repository"
)

func (a *App) loadRoutes() {
	repo := repository.New(a.db)

	game := handlers.NewGameHandler(a.logger, repo, a.ws)
	leaderboard := handlers.NewLeaderboardHandler(a.logger, repo)

	a.router.HandleFunc("GET /v1/status", handlers.Status(a.logger))

	a.router.HandleFunc("POST /v1/game", game.Create)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/move", game.Move)
	a.router.HandleFunc("POST /v1/game/{id}/restart", game.Restart)
	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("GET /v1/leaderboard", leaderboard.List)
}
