// Package monitor serves the progress of a running evolution over HTTP and a
// websocket event stream.
package monitor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"othello_go/internal/evolve"
	"othello_go/internal/game"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type GeneDTO struct {
	Weights  []int   `json:"weights"`
	Games    int     `json:"games"`
	WinScore int     `json:"win_score"`
	Fitness  float64 `json:"fitness"`
}

type MatchDTO struct {
	Generation int    `json:"generation"`
	League     int    `json:"league"`
	Game       int    `json:"game"`
	Black      []int  `json:"black"`
	White      []int  `json:"white"`
	Winner     string `json:"winner"` // "black", "white" or "tie"
	BlackDisks int    `json:"black_disks"`
	WhiteDisks int    `json:"white_disks"`
	Moves      int    `json:"moves"`
}

// Status is the snapshot served by /api/status and sent to new websocket clients.
type Status struct {
	Running    bool      `json:"running"`
	Generation int       `json:"generation"`
	Games      int       `json:"games"` // booked in the current generation
	Population [][]int   `json:"population,omitempty"`
	Standings  []GeneDTO `json:"standings,omitempty"`
	Best       *GeneDTO  `json:"best,omitempty"`
	UpdatedAt  int64     `json:"updated_at_ms"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is an evolve.Observer that keeps the latest Status and fans events out
// to websocket clients. Slow clients drop messages rather than block the
// optimizer.
type Hub struct {
	mu        sync.Mutex
	status    Status
	clients   map[*client]struct{}
	broadcast chan wsMessage
}

var _ evolve.Observer = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*client]struct{}),
		broadcast: make(chan wsMessage, 64),
	}
}

// Run delivers published events until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				c.sendJSON(msg)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *Hub) publish(typ string, payload any) {
	select {
	case h.broadcast <- wsMessage{Type: typ, Payload: mustMarshal(payload)}:
	default:
	}
}

func (h *Hub) update(fn func(*Status)) {
	h.mu.Lock()
	fn(&h.status)
	h.status.UpdatedAt = time.Now().UnixMilli()
	h.mu.Unlock()
}

func (h *Hub) GenerationStarted(gen int, pop []game.Weights) error {
	rows := make([][]int, len(pop))
	for i, w := range pop {
		rows[i] = w[:]
	}
	h.update(func(s *Status) {
		s.Running = true
		s.Generation = gen
		s.Games = 0
		s.Population = rows
		s.Standings = nil
	})
	h.publish("generation_started", map[string]any{"generation": gen, "population": rows})
	return nil
}

func (h *Hub) MatchPlayed(m evolve.Match) error {
	dto := MatchDTO{
		Generation: m.Generation,
		League:     m.League,
		Game:       m.Number,
		Black:      m.Black[:],
		White:      m.White[:],
		Winner:     "tie",
		BlackDisks: m.Result.Black,
		WhiteDisks: m.Result.White,
		Moves:      m.Result.Moves,
	}
	if m.Result.Decided {
		dto.Winner = "white"
		if m.Result.Winner == game.Black {
			dto.Winner = "black"
		}
	}
	h.update(func(s *Status) { s.Games++ })
	h.publish("match", dto)
	return nil
}

func (h *Hub) GenerationFinished(gen int, standings []evolve.Standing) error {
	rows := make([]GeneDTO, len(standings))
	for i, st := range standings {
		rows[i] = geneDTO(st)
	}
	h.update(func(s *Status) { s.Standings = rows })
	h.publish("generation_finished", map[string]any{"generation": gen, "standings": rows})
	return nil
}

func (h *Hub) Finished(best evolve.Standing) error {
	dto := geneDTO(best)
	h.update(func(s *Status) {
		s.Running = false
		s.Best = &dto
	})
	h.publish("finished", dto)
	return nil
}

func geneDTO(st evolve.Standing) GeneDTO {
	w := st.Weights
	return GeneDTO{Weights: w[:], Games: st.Games, WinScore: st.WinScore, Fitness: st.Fitness}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (c *client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// writePump drains send, pinging idle connections.
func writePump(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
