package server

import (
	"testing"

	"buildbrawl/internal/config"
	"buildbrawl/internal/game"
)

func TestRoomDrainSwapsBuffer(t *testing.T) {
	r := newRoom(config.Default())
	r.pushInput("p1", game.Input{ClientID: "p1", Seq: 1, DX: 1})
	r.pushInput("p2", game.Input{ClientID: "p2", Seq: 1, DX: -1})
	r.pushInput("p1", game.Input{ClientID: "p1", Seq: 2, Jump: true})

	frames := r.Drain()
	if len(frames) != 3 {
		t.Fatalf("drained %d frames, want 3", len(frames))
	}
	// Each input is its own frame, in arrival order, so the core's merge
	// keeps the last one per client.
	merged := game.MergeInputs(frames)
	if merged["p1"].Seq != 2 || !merged["p1"].Jump {
		t.Errorf("p1 merged input = %+v", merged["p1"])
	}
	if merged["p2"].DX != -1 {
		t.Errorf("p2 merged input = %+v", merged["p2"])
	}

	if again := r.Drain(); again != nil {
		t.Errorf("second drain returned %d frames, want none", len(again))
	}
}

func TestRoomJoinRejectsUnknownSlot(t *testing.T) {
	r := newRoom(config.Default()) // players p1, p2
	c := &Client{Send: make(chan []byte, 1), room: r}
	r.joinClient(c, "intruder")
	if c.ID != "" {
		t.Error("unknown player id claimed a slot")
	}
	if len(r.clients) != 0 {
		t.Errorf("clients = %d, want 0", len(r.clients))
	}
}

func TestRoomJoinRejectsDuplicate(t *testing.T) {
	r := newRoom(config.Default())
	first := &Client{Send: make(chan []byte, 1), room: r}
	r.joinClient(first, "p1")
	if first.ID != "p1" || len(r.clients) != 1 {
		t.Fatalf("first join failed: id=%q clients=%d", first.ID, len(r.clients))
	}
	if r.started {
		t.Fatal("match started before all slots claimed")
	}

	second := &Client{Send: make(chan []byte, 1), room: r}
	r.joinClient(second, "p1")
	if second.ID != "" {
		t.Error("duplicate join claimed an occupied slot")
	}
	if r.clients["p1"] != first {
		t.Error("duplicate join displaced the original client")
	}
}

func TestRoomRemoveClient(t *testing.T) {
	r := newRoom(config.Default())
	c := &Client{Send: make(chan []byte, 1), room: r}
	r.joinClient(c, "p1")
	r.removeClient(c)
	if len(r.clients) != 0 {
		t.Errorf("clients = %d after removal, want 0", len(r.clients))
	}
	if _, open := <-c.Send; open {
		t.Error("send channel still open after removal")
	}
}
