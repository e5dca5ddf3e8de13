// Package server exposes the simulation's external records over HTTP: the
// current run's layout and statistics, the dated daily challenge, replay
// validation, and a websocket stream of run snapshots.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"gridrl/challenge"
	"gridrl/grid_world"
	"gridrl/stats"

	"github.com/gorilla/mux"
	channerics "github.com/niceyeti/channerics/channels"
)

// Snapshot is one published view of a run: its serialized layout plus the
// rolled-up statistics. Snapshots are deep copies, so publishing never
// races the live grid.
type Snapshot struct {
	Mode    string            `json:"mode"`
	Layout  grid_world.Layout `json:"layout"`
	Moves   stats.MoveStats   `json:"moves"`
	Summary stats.Summary     `json:"summary"`
}

// Server caches the latest snapshot for the REST routes and forwards the
// snapshot stream to websocket clients. Like its ancestor this is a
// single-page, single-stream server; the websocket feed supports one
// consumer at a time.
type Server struct {
	addr   string
	wsFeed <-chan Snapshot

	mu   sync.RWMutex
	last *Snapshot
}

// NewServer starts consuming the updates stream and returns the server.
// The stream is split in two: one branch keeps the REST cache current, the
// other feeds the websocket.
func NewServer(ctx context.Context, addr string, updates <-chan Snapshot) *Server {
	branches := channerics.Broadcast(ctx.Done(), updates, 2)
	s := &Server{
		addr:   addr,
		wsFeed: branches[1],
	}

	go func() {
		for snap := range channerics.OrDone(ctx.Done(), branches[0]) {
			s.mu.Lock()
			copied := snap
			s.last = &copied
			s.mu.Unlock()
		}
	}()

	return s
}

// Serve blocks on the listener.
func (s *Server) Serve() error {
	if err := http.ListenAndServe(s.addr, s.router()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/layout", s.handleLayout).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", s.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/api/challenge/{date}", s.handleChallenge).Methods(http.MethodGet)
	router.HandleFunc("/api/challenge/{date}/replay", s.handleReplay).Methods(http.MethodPost)
	router.HandleFunc("/ws", s.handleWebsocket)
	return router
}

func (s *Server) latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	snap := s.latest()
	if snap == nil {
		http.Error(w, "no run snapshot yet", http.StatusNotFound)
		return
	}
	writeJSON(w, snap.Layout)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.latest()
	if snap == nil {
		http.Error(w, "no run snapshot yet", http.StatusNotFound)
		return
	}
	writeJSON(w, struct {
		Mode    string          `json:"mode"`
		Moves   stats.MoveStats `json:"moves"`
		Summary stats.Summary   `json:"summary"`
	}{snap.Mode, snap.Moves, snap.Summary})
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	ch, err := challenge.Generate(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, struct {
		Date   string            `json:"date"`
		Seed   uint32            `json:"initial_seed"`
		Layout grid_world.Layout `json:"layout"`
	}{ch.Date, ch.Seed, ch.Layout()})
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	var replay challenge.Replay
	if err := json.NewDecoder(r.Body).Decode(&replay); err != nil {
		http.Error(w, fmt.Sprintf("malformed replay payload: %v", err), http.StatusBadRequest)
		return
	}

	result, err := challenge.ValidateReplay(date, replay)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	cli, err := newClient(s.wsFeed, w, r)
	if err != nil {
		log.Println("websocket upgrade:", err)
		return
	}
	if err := cli.sync(); err != nil {
		log.Println("websocket client:", err)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("encode response:", err)
	}
}
