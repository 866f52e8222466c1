package main

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

// playerCommand wraps a player submission: run it, then return the
// player-scoped view so the client can resynchronize in one round trip.
func playerCommand(cfg *Config, game *Game, hub *leaderboardHub, name string, run func(*http.Request) (string, error)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		playerID, err := run(r)
		if err != nil {
			writeError(cfg, w, err)

			return
		}

		view, err := game.PlayerState(playerID)
		if err != nil {
			writeError(cfg, w, err)

			return
		}

		writeJSON(cfg, w, http.StatusOK, view)
		hub.publish(game.Rankings())

		logf(cfg, "GAME: %s by player %s (%s) in %s",
			name,
			playerID,
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveRegister(cfg *Config, game *Game, hub *leaderboardHub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req struct {
			Name string `json:"name"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(cfg, w, err)

			return
		}

		playerID, player, err := game.Register(req.Name)
		if err != nil {
			writeError(cfg, w, err)

			return
		}

		writeJSON(cfg, w, http.StatusOK, map[string]any{
			"playerId": playerID,
			"player":   player,
		})
		hub.publish(game.Rankings())

		logf(cfg, "GAME: Player %q registered as %s from %s", req.Name, playerID, realIP(r))
	}
}

func servePlayerState(cfg *Config, game *Game) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		view, err := game.PlayerState(p.ByName("playerId"))
		if err != nil {
			writeError(cfg, w, err)

			return
		}

		writeJSON(cfg, w, http.StatusOK, view)
	}
}

func registerPlayerRoutes(cfg *Config, game *Game, hub *leaderboardHub, mux *httprouter.Router) {
	prefix := cfg.prefix + "/api/player"

	command := func(name string, run func(*http.Request) (string, error)) httprouter.Handle {
		return playerCommand(cfg, game, hub, name, run)
	}

	mux.POST(prefix+"/register", serveRegister(cfg, game, hub))
	mux.GET(prefix+"/state/:playerId", servePlayerState(cfg, game))

	mux.POST(prefix+"/submit-bet", command("submit-bet", func(r *http.Request) (string, error) {
		var req struct {
			PlayerID string `json:"playerId"`
			Bet      int    `json:"bet"`
		}
		if err := decodeBody(r, &req); err != nil {
			return "", err
		}
		return req.PlayerID, game.SubmitBet(req.PlayerID, req.Bet)
	}))

	mux.POST(prefix+"/submit-answer", command("submit-answer", func(r *http.Request) (string, error) {
		var req struct {
			PlayerID  string  `json:"playerId"`
			Answer    string  `json:"answer"`
			TimeTaken float64 `json:"timeTaken"`
		}
		if err := decodeBody(r, &req); err != nil {
			return "", err
		}
		return req.PlayerID, game.SubmitAnswer(req.PlayerID, req.Answer, req.TimeTaken)
	}))

	mux.POST(prefix+"/log-focus-loss", command("log-focus-loss", func(r *http.Request) (string, error) {
		var req struct {
			PlayerID           string  `json:"playerId"`
			FocusLossCount     int     `json:"focusLossCount"`
			TotalFocusLostTime float64 `json:"totalFocusLostTime"`
			Round              int     `json:"round"`
		}
		if err := decodeBody(r, &req); err != nil {
			return "", err
		}
		return req.PlayerID, game.LogFocusLoss(req.PlayerID, req.FocusLossCount, req.TotalFocusLostTime)
	}))

	mux.POST(prefix+"/submit-prediction", command("submit-prediction", func(r *http.Request) (string, error) {
		var req struct {
			PlayerID   string `json:"playerId"`
			Prediction string `json:"prediction"`
		}
		if err := decodeBody(r, &req); err != nil {
			return "", err
		}
		return req.PlayerID, game.SubmitPrediction(req.PlayerID, req.Prediction)
	}))
}
