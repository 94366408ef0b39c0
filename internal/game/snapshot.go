package game

import (
	"encoding/json"
	"fmt"
)

// SerializeSnapshot renders a state as a compact JSON value. The round trip
// through DeserializeSnapshot is lossless for every entity field.
func SerializeSnapshot(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}
	return data, nil
}

// DeserializeSnapshot parses a snapshot produced by SerializeSnapshot into
// a detached State.
func DeserializeSnapshot(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("deserialize snapshot: %w", err)
	}
	if s.Entities == nil {
		s.Entities = []*Entity{}
	}
	return &s, nil
}

// Reconcile reconstructs authoritative state from a snapshot plus a
// buffered tail of per-tick inputs. It builds a detached World seeded from
// the snapshot's PRNG state and replays the inputs through the full tick
// pipeline, so the result is byte-identical to what the live server
// computed for the same sequence. The live World is never touched.
func Reconcile(snapshot []byte, bufferedInputs []map[string]Input, tickRate int) (*State, error) {
	s, err := DeserializeSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	w := NewWorldFromState(s, tickRate)
	for _, frame := range bufferedInputs {
		w.Tick([]map[string]Input{frame})
	}
	return w.State(), nil
}
