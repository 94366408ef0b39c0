package server

import (
	"log"
	"sync"

	"buildbrawl/internal/config"
	"buildbrawl/internal/game"
	"buildbrawl/internal/match"
)

// Room hosts one match: it buffers client inputs between ticks (the
// match.InputSource side) and fans lifecycle events and snapshots back out
// to every connected client (the match.Emitter side).
type Room struct {
	cfg config.Config

	mu      sync.Mutex
	clients map[string]*Client
	frames  []map[string]game.Input
	m       *match.Match
	started bool
}

func newRoom(cfg config.Config) *Room {
	return &Room{
		cfg:     cfg,
		clients: make(map[string]*Client),
	}
}

// joinClient binds a connection to a configured player slot. When every
// slot is claimed the match starts.
func (r *Room) joinClient(c *Client, clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasSlot(clientID) {
		log.Printf("join rejected: %q is not a configured player", clientID)
		return
	}
	if _, taken := r.clients[clientID]; taken {
		log.Printf("join rejected: %q already connected", clientID)
		return
	}

	c.ID = clientID
	r.clients[clientID] = c
	log.Printf("player %q joined (%d/%d)", clientID, len(r.clients), len(r.cfg.Players))

	if !r.started && len(r.clients) == len(r.cfg.Players) {
		r.startMatchLocked()
	}
}

func (r *Room) hasSlot(clientID string) bool {
	for _, id := range r.cfg.Players {
		if id == clientID {
			return true
		}
	}
	return false
}

func (r *Room) startMatchLocked() {
	m, err := match.New(match.Config{
		ID:              r.cfg.MatchID,
		Seed:            r.cfg.Seed,
		Mode:            match.ModeKind(r.cfg.Mode),
		Players:         r.cfg.Players,
		RoundsToWin:     r.cfg.RoundsToWin,
		RoundTicks:      r.cfg.RoundTicks(),
		TickRate:        r.cfg.TickRateHz,
		ScoreboardDelay: r.cfg.ScoreboardDelay(),
		SpawnPoints:     r.cfg.SpawnPoints,
		LootSpawns:      r.cfg.LootSpawns,
	}, r, r.broadcast)
	if err != nil {
		log.Printf("match start failed: %v", err)
		return
	}
	r.m = m
	r.started = true
	go m.Run()
	log.Printf("match %q started (%s, first to %d)", r.cfg.MatchID, r.cfg.Mode, r.cfg.RoundsToWin)
}

// pushInput queues one client input as its own frame; the core's merge
// (last writer per client across the tick's frames) does the rest.
func (r *Room) pushInput(clientID string, in game.Input) {
	r.mu.Lock()
	r.frames = append(r.frames, map[string]game.Input{clientID: in})
	r.mu.Unlock()
}

// Drain hands the buffered frames to the match runner, once per tick.
func (r *Room) Drain() []map[string]game.Input {
	r.mu.Lock()
	frames := r.frames
	r.frames = nil
	r.mu.Unlock()
	return frames
}

// broadcast encodes one lifecycle event and sends it to every client.
// Slow clients are skipped rather than allowed to stall the tick pace.
func (r *Room) broadcast(event any) {
	frame, err := encodeFrame(event)
	if err != nil {
		log.Printf("broadcast encode failed: %v", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		select {
		case c.Send <- frame:
		default:
		}
	}
}

func (r *Room) removeClient(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		return
	}
	if existing, ok := r.clients[c.ID]; ok && existing == c {
		delete(r.clients, c.ID)
		close(c.Send)
		log.Printf("player %q left", c.ID)
	}
}

// stop halts the hosted match, if one is running.
func (r *Room) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m != nil {
		r.m.Stop()
	}
}
