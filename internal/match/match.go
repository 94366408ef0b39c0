package match

import (
	"fmt"
	"log"
	"sync"
	"time"

	"buildbrawl/internal/game"
)

// Phase is the top-level match state.
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseWarmup     Phase = "warmup"
	PhaseInProgress Phase = "in_progress"
	PhaseRoundEnd   Phase = "round_end"
	PhaseMatchEnd   Phase = "match_end"
)

// RoundStatus tracks one round's lifecycle.
type RoundStatus string

const (
	RoundPending RoundStatus = "pending"
	RoundActive  RoundStatus = "active"
	RoundEnded   RoundStatus = "ended"
)

// Config is the immutable match configuration, supplied wholesale by the
// orchestrator at creation time.
type Config struct {
	ID              string
	Seed            uint32
	Mode            ModeKind
	Players         []string
	RoundsToWin     int
	RoundTicks      int // hard per-round tick limit
	TickRate        int
	ScoreboardDelay time.Duration
	SpawnPoints     [][2]float64
	LootSpawns      [][2]float64
}

// PlayerState is one player's cumulative match stats.
type PlayerState struct {
	Kills       int
	Deaths      int
	Damage      float64
	Score       int
	TimeAlive   int // ticks spent alive
	RespawnTick int
	RoundWins   int
}

// RoundState is the record of one round, including the per-tick checksums
// kept for desync audits.
type RoundState struct {
	Number    int
	Status    RoundStatus
	Winners   []string
	Checksums []string
}

// InputSource delivers the tick's buffered input frames. The runner drains
// it once per tick and makes no assumption about the transport behind it.
type InputSource interface {
	Drain() []map[string]game.Input
}

// Match drives one World across rounds. It owns the World for its entire
// lifetime: rounds reset entities, they never recreate the World. The round
// loop's tick pacing and the inter-round scoreboard delay are the only
// suspension points; the tick computation itself stays synchronous.
type Match struct {
	cfg    Config
	world  *game.World
	mode   Mode
	source InputSource
	emit   Emitter

	mu      sync.RWMutex
	phase   Phase
	rounds  []*RoundState
	players map[string]*PlayerState

	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a match. The mode resolves statically here; an unknown
// mode kind fails construction instead of surfacing mid-match.
func New(cfg Config, source InputSource, emit Emitter) (*Match, error) {
	if len(cfg.Players) < 2 {
		return nil, fmt.Errorf("match: need at least 2 players, got %d", len(cfg.Players))
	}
	mode, err := NewMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = game.TickRate
	}
	if cfg.RoundsToWin <= 0 {
		cfg.RoundsToWin = 2
	}
	if cfg.RoundTicks <= 0 {
		cfg.RoundTicks = 120 * cfg.TickRate
	}
	if emit == nil {
		emit = func(any) {}
	}

	m := &Match{
		cfg:     cfg,
		world:   game.NewWorld(cfg.Seed, cfg.TickRate),
		mode:    mode,
		source:  source,
		emit:    emit,
		phase:   PhaseLobby,
		players: make(map[string]*PlayerState, len(cfg.Players)),
		stop:    make(chan struct{}),
	}
	for _, id := range cfg.Players {
		m.players[id] = &PlayerState{}
	}
	mode.Initialize(m)
	return m, nil
}

// World exposes the match's world, mainly for tests and mode modules.
func (m *Match) World() *game.World { return m.world }

// Phase returns the current top-level phase.
func (m *Match) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// Rounds returns the recorded rounds so far.
func (m *Match) Rounds() []*RoundState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*RoundState(nil), m.rounds...)
}

// PlayerStats returns a player's cumulative stats.
func (m *Match) PlayerStats(id string) PlayerState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ps, ok := m.players[id]; ok {
		return *ps
	}
	return PlayerState{}
}

// Stop flags the match to halt; the round loop observes it between ticks.
// There is no mid-tick cancellation.
func (m *Match) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Run executes the match to completion: lobby, then rounds until a player
// reaches the configured round wins, then match end. Run blocks; callers
// normally start it on its own goroutine.
func (m *Match) Run() {
	m.setPhase(PhaseInProgress)
	m.emit(MatchStartEvent{
		Type:        EventMatchStart,
		MatchID:     m.cfg.ID,
		Mode:        string(m.cfg.Mode),
		Players:     m.cfg.Players,
		RoundsToWin: m.cfg.RoundsToWin,
	})

	for round := 1; ; round++ {
		if !m.runRound(round) {
			return // stopped
		}
		if winners := m.matchWinners(); len(winners) > 0 {
			m.setPhase(PhaseMatchEnd)
			m.emit(MatchEndEvent{Type: EventMatchEnd, Winners: winners, Rounds: round})
			m.mode.OnMatchEnd(m)
			log.Printf("match %s ended after %d rounds, winners %v", m.cfg.ID, round, winners)
			return
		}

		m.setPhase(PhaseRoundEnd)
		m.emit(MatchStateEvent{Type: EventMatchStateUpdate, Phase: PhaseRoundEnd, Round: round})
		select {
		case <-m.stop:
			return
		case <-time.After(m.scoreboardDelay()):
		}
		m.setPhase(PhaseInProgress)
	}
}

// runRound plays one round. It returns false when the match was stopped.
func (m *Match) runRound(round int) bool {
	rs := &RoundState{Number: round, Status: RoundActive}
	m.mu.Lock()
	m.rounds = append(m.rounds, rs)
	m.mu.Unlock()

	m.world.ResetRound(m.cfg.Players, func(id string, idx int) (float64, float64) {
		return m.mode.SpawnPoint(m, id, idx)
	}, m.cfg.LootSpawns)
	m.mode.OnRoundStart(m, round)
	m.emit(RoundStartEvent{Type: EventRoundStart, Round: round, Tick: m.world.State().Tick})

	interval := time.Second / time.Duration(m.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for elapsed := 0; elapsed < m.cfg.RoundTicks; elapsed++ {
		select {
		case <-m.stop:
			return false
		case <-ticker.C:
		}

		res := m.world.Tick(m.source.Drain())
		m.recordTick(rs, res)
		m.mode.OnTick(m, res)
		m.emitSnapshot(res)

		if m.mode.ShouldEndRound(m) {
			break
		}
	}

	m.finishRound(rs)
	return true
}

// recordTick folds one tick's outcome into match stats: kill and death
// attribution from the damage events, damage totals, time alive, and the
// audit checksum.
func (m *Match) recordTick(rs *RoundState, res *game.TickResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs.Checksums = append(rs.Checksums, res.Checksum)

	for _, ev := range res.Damage {
		if attacker, ok := m.players[ev.Attacker]; ok && ev.Attacker != ev.Target {
			attacker.Damage += ev.Amount
			if ev.Lethal {
				attacker.Kills++
				attacker.Score += 100
			}
		}
		if target, ok := m.players[ev.Target]; ok && ev.Lethal {
			target.Deaths++
		}
	}

	for _, id := range m.cfg.Players {
		p := res.State.Player(id)
		if p != nil && p.Alive() {
			m.players[id].TimeAlive++
		}
	}
}

// finishRound closes out a round: winners, win counts, score events.
func (m *Match) finishRound(rs *RoundState) {
	winners := m.mode.OnRoundEnd(m)

	m.mu.Lock()
	rs.Status = RoundEnded
	rs.Winners = winners
	wins := make(map[string]int, len(m.cfg.Players))
	for _, id := range winners {
		if ps, ok := m.players[id]; ok {
			ps.RoundWins++
			ps.Score += 250
		}
	}
	scores := make([]PlayerScoreEvent, 0, len(m.cfg.Players))
	for _, id := range m.cfg.Players {
		ps := m.players[id]
		wins[id] = ps.RoundWins
		scores = append(scores, PlayerScoreEvent{
			Type:      EventPlayerScore,
			ClientID:  id,
			Kills:     ps.Kills,
			Deaths:    ps.Deaths,
			Damage:    ps.Damage,
			Score:     ps.Score,
			RoundWins: ps.RoundWins,
		})
	}
	m.mu.Unlock()

	m.emit(RoundEndEvent{Type: EventRoundEnd, Round: rs.Number, Winners: winners, Wins: wins})
	for _, ev := range scores {
		m.emit(ev)
	}
	log.Printf("match %s round %d ended, winners %v", m.cfg.ID, rs.Number, winners)
}

// setRespawnTick records when a dead player will come back; mode modules
// call it from the tick loop.
func (m *Match) setRespawnTick(id string, tick int) {
	m.mu.Lock()
	if ps, ok := m.players[id]; ok {
		ps.RespawnTick = tick
	}
	m.mu.Unlock()
}

// matchWinners returns the players who reached the required round wins.
func (m *Match) matchWinners() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var winners []string
	for _, id := range m.cfg.Players {
		if m.players[id].RoundWins >= m.cfg.RoundsToWin {
			winners = append(winners, id)
		}
	}
	return winners
}

func (m *Match) emitSnapshot(res *game.TickResult) {
	data, err := game.SerializeSnapshot(res.State)
	if err != nil {
		log.Printf("match %s: snapshot serialize failed: %v", m.cfg.ID, err)
		return
	}
	m.emit(SnapshotEvent{Type: EventSnapshot, Tick: res.State.Tick, Checksum: res.Checksum, Data: data})
}

func (m *Match) setPhase(p Phase) {
	m.mu.Lock()
	m.phase = p
	m.mu.Unlock()
}

func (m *Match) scoreboardDelay() time.Duration {
	if m.cfg.ScoreboardDelay <= 0 {
		return 5 * time.Second
	}
	return m.cfg.ScoreboardDelay
}
