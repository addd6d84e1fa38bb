package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.log, a.db, a.cookies, a.jwt)
	game := handlers.NewGameHandler(
		a.log, a.db, a.cookies, a.cfg.Game, createRand(),
	)
	highscores := handlers.NewHighscores(a.log, a.db)

	a.router.HandleFunc("POST /v1/register", auth.Register)
	a.router.HandleFunc("POST /v1/login", auth.Login)
	a.router.HandleFunc("POST /v1/logout", auth.Logout)
	a.router.HandleFunc("GET /v1/status", auth.Status)

	a.router.HandleFunc("GET /v1/highscores", highscores.List)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/click", game.Click)
	a.router.HandleFunc("POST /v1/game/{id}/chord", game.Chord)
	a.router.HandleFunc("POST /v1/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /v1/game/{id}/restart", game.Restart)
	a.router.HandleFunc("POST /v1/game/{id}/difficulty", game.ChangeDifficulty)
	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)
}
