package main

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

// masterCommand wraps a game command: run it, return the full state so the
// master panel can resynchronize, and push the updated rankings to any
// leaderboard displays.
func masterCommand(cfg *Config, game *Game, hub *leaderboardHub, name string, run func(*http.Request) error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		if err := run(r); err != nil {
			writeError(cfg, w, err)

			return
		}

		writeJSON(cfg, w, http.StatusOK, game.Snapshot())
		hub.publish(game.Rankings())

		logf(cfg, "GAME: %s by %s in %s",
			name,
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveMasterLogin checks the shared quiz master password. This is a
// placeholder credential compared in plaintext, not a security boundary;
// change it before any real deployment.
func serveMasterLogin(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req struct {
			Password string `json:"password"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(cfg, w, err)

			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.masterPassword)) != 1 {
			logf(cfg, "GAME: Failed master login from %s", realIP(r))
			writeJSON(cfg, w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   "Invalid password",
			})

			return
		}

		writeJSON(cfg, w, http.StatusOK, map[string]any{"success": true})
	}
}

func serveMasterState(cfg *Config, game *Game) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(cfg, w, http.StatusOK, game.Snapshot())
	}
}

func registerMasterRoutes(cfg *Config, game *Game, hub *leaderboardHub, mux *httprouter.Router) {
	prefix := cfg.prefix + "/api/master"

	command := func(name string, run func(*http.Request) error) httprouter.Handle {
		return masterCommand(cfg, game, hub, name, run)
	}

	mux.POST(prefix+"/login", serveMasterLogin(cfg))
	mux.GET(prefix+"/state", serveMasterState(cfg, game))

	mux.POST(prefix+"/start-quiz", command("start-quiz", func(*http.Request) error {
		return game.StartQuiz()
	}))

	mux.POST(prefix+"/next-round", command("next-round", func(*http.Request) error {
		return game.NextRound()
	}))

	mux.POST(prefix+"/toggle-betting", command("toggle-betting", func(r *http.Request) error {
		var req struct {
			Enabled bool `json:"enabled"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.ToggleBetting(req.Enabled)
	}))

	mux.POST(prefix+"/advance-to-answering", command("advance-to-answering", func(*http.Request) error {
		return game.AdvanceToAnswering()
	}))

	mux.POST(prefix+"/lock-answering", command("lock-answering", func(r *http.Request) error {
		var req struct {
			Locked bool `json:"locked"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.LockAnswering(req.Locked)
	}))

	mux.POST(prefix+"/mark-answer", command("mark-answer", func(r *http.Request) error {
		var req struct {
			PlayerID string `json:"playerId"`
			Correct  bool   `json:"correct"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.MarkAnswer(req.PlayerID, req.Correct)
	}))

	mux.POST(prefix+"/adjust-score", command("adjust-score", func(r *http.Request) error {
		var req struct {
			PlayerID string `json:"playerId"`
			Change   int    `json:"change"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.AdjustScore(req.PlayerID, req.Change)
	}))

	mux.POST(prefix+"/undo-grading", command("undo-grading", func(r *http.Request) error {
		var req struct {
			PlayerID string `json:"playerId"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.UndoGrading(req.PlayerID)
	}))

	mux.POST(prefix+"/show-results", command("show-results", func(*http.Request) error {
		return game.ShowResults()
	}))

	mux.POST(prefix+"/start-auction", command("start-auction", func(*http.Request) error {
		return game.StartAuction()
	}))

	mux.POST(prefix+"/end-auction", command("end-auction", func(*http.Request) error {
		return game.EndAuction()
	}))

	mux.POST(prefix+"/start-spotlight", command("start-spotlight", func(r *http.Request) error {
		var req struct {
			PlayerID string `json:"playerId"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.StartSpotlight(req.PlayerID)
	}))

	mux.POST(prefix+"/grade-spotlight", command("grade-spotlight", func(r *http.Request) error {
		var req struct {
			Correct bool `json:"correct"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.GradeSpotlight(req.Correct)
	}))

	mux.POST(prefix+"/start-poker", command("start-poker", func(*http.Request) error {
		return game.StartPoker()
	}))

	mux.POST(prefix+"/poker-to-answering", command("poker-to-answering", func(*http.Request) error {
		return game.PokerToAnswering()
	}))

	mux.POST(prefix+"/show-poker-results", command("show-poker-results", func(*http.Request) error {
		return game.ShowPokerResults()
	}))

	mux.POST(prefix+"/remove-player", command("remove-player", func(r *http.Request) error {
		var req struct {
			PlayerID string `json:"playerId"`
		}
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		return game.RemovePlayer(req.PlayerID)
	}))

	mux.POST(prefix+"/end-game", command("end-game", func(*http.Request) error {
		return game.EndGame()
	}))

	mux.POST(prefix+"/reset-game", command("reset-game", func(*http.Request) error {
		return game.ResetGame()
	}))
}
