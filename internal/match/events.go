package match

// Lifecycle event types emitted through the injected emit callback. The
// core defines payload shapes; transport and framing belong to the caller.
const (
	EventMatchStart       = "match_start"
	EventRoundStart       = "round_start"
	EventRoundEnd         = "round_end"
	EventMatchEnd         = "match_end"
	EventMatchStateUpdate = "match_state_update"
	EventPlayerScore      = "player_score_update"
	EventSnapshot         = "snapshot"
)

// Emitter receives lifecycle events. A nil Emitter is valid and drops them.
type Emitter func(event any)

// MatchStartEvent announces the match configuration to clients.
type MatchStartEvent struct {
	Type        string   `json:"type" msgpack:"type"`
	MatchID     string   `json:"matchId" msgpack:"matchId"`
	Mode        string   `json:"mode" msgpack:"mode"`
	Players     []string `json:"players" msgpack:"players"`
	RoundsToWin int      `json:"roundsToWin" msgpack:"roundsToWin"`
}

// RoundStartEvent marks the first tick of a round.
type RoundStartEvent struct {
	Type  string `json:"type" msgpack:"type"`
	Round int    `json:"round" msgpack:"round"`
	Tick  int    `json:"tick" msgpack:"tick"`
}

// RoundEndEvent carries the round's winners and cumulative win counts.
type RoundEndEvent struct {
	Type    string         `json:"type" msgpack:"type"`
	Round   int            `json:"round" msgpack:"round"`
	Winners []string       `json:"winners" msgpack:"winners"`
	Wins    map[string]int `json:"wins" msgpack:"wins"`
}

// MatchEndEvent carries the final result.
type MatchEndEvent struct {
	Type    string   `json:"type" msgpack:"type"`
	Winners []string `json:"winners" msgpack:"winners"`
	Rounds  int      `json:"rounds" msgpack:"rounds"`
}

// MatchStateEvent reports a phase transition.
type MatchStateEvent struct {
	Type  string `json:"type" msgpack:"type"`
	Phase Phase  `json:"phase" msgpack:"phase"`
	Round int    `json:"round" msgpack:"round"`
}

// PlayerScoreEvent reports one player's cumulative match stats.
type PlayerScoreEvent struct {
	Type      string  `json:"type" msgpack:"type"`
	ClientID  string  `json:"clientId" msgpack:"clientId"`
	Kills     int     `json:"kills" msgpack:"kills"`
	Deaths    int     `json:"deaths" msgpack:"deaths"`
	Damage    float64 `json:"damage" msgpack:"damage"`
	Score     int     `json:"score" msgpack:"score"`
	RoundWins int     `json:"roundWins" msgpack:"roundWins"`
}

// SnapshotEvent wraps one tick's serialized state for broadcast.
type SnapshotEvent struct {
	Type     string `json:"type" msgpack:"type"`
	Tick     int    `json:"tick" msgpack:"tick"`
	Checksum string `json:"checksum" msgpack:"checksum"`
	Data     []byte `json:"data" msgpack:"data"`
}
