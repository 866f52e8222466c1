package main

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type lbClient struct {
	conn *websocket.Conn
	send chan Leaderboard
}

// leaderboardHub pushes ranking snapshots to any connected leaderboard
// displays. Polling GET /api/leaderboard remains the primary contract; the
// stream is a convenience for the projector view. Slow clients are dropped
// rather than buffered indefinitely.
type leaderboardHub struct {
	mu      sync.Mutex
	clients map[*lbClient]bool
}

func newLeaderboardHub() *leaderboardHub {
	return &leaderboardHub{
		clients: make(map[*lbClient]bool),
	}
}

func (h *leaderboardHub) publish(board Leaderboard) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- board:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *leaderboardHub) add(client *lbClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
}

func (h *leaderboardHub) remove(client *lbClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (c *lbClient) writePump() {
	defer c.conn.Close()

	for board := range c.send {
		if err := c.conn.WriteJSON(board); err != nil {
			return
		}
	}
}

// readPump discards anything the display sends; it exists to notice closes.
func (c *lbClient) readPump(h *leaderboardHub) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func serveLeaderboard(cfg *Config, game *Game) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(cfg, w, http.StatusOK, game.Rankings())
	}
}

func serveLeaderboardWS(cfg *Config, game *Game, hub *leaderboardHub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "SERVE: Websocket upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &lbClient{
			conn: conn,
			send: make(chan Leaderboard, 8),
		}

		hub.add(client)
		client.send <- game.Rankings()

		go client.writePump()
		client.readPump(hub)
	}
}

// serveJoinQR renders a QR code of the player join URL so the quiz master
// can project it during registration.
func serveJoinQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		path := strings.TrimSuffix(r.URL.Path, "/api/join/qr")
		url := scheme + "://" + r.Host + path + "/player.html"

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			writeJSON(cfg, w, http.StatusInternalServerError, map[string]string{"error": "qr generation failed"})
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err

			return
		}
	}
}

func registerPublicRoutes(cfg *Config, game *Game, hub *leaderboardHub, errs chan<- error, mux *httprouter.Router) {
	mux.GET(cfg.prefix+"/api/leaderboard", serveLeaderboard(cfg, game))
	mux.GET(cfg.prefix+"/api/leaderboard/ws", serveLeaderboardWS(cfg, game, hub))
	mux.GET(cfg.prefix+"/api/join/qr", serveJoinQR(cfg, errs))
}
