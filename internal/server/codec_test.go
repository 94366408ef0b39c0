package server

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type testEvent struct {
	Type string `msgpack:"type"`
	Tick int    `msgpack:"tick"`
	Data []byte `msgpack:"data"`
}

func TestFrameRoundTripSmall(t *testing.T) {
	ev := testEvent{Type: "round_start", Tick: 7}
	frame, err := encodeFrame(ev)
	if err != nil {
		t.Fatal(err)
	}
	if frame[0] != frameRaw {
		t.Errorf("small frame prefix = %#x, want raw", frame[0])
	}

	payload, err := decodeFrame(frame)
	if err != nil {
		t.Fatal(err)
	}
	var got testEvent
	if err := msgpack.Unmarshal(payload, &got); err != nil {
		t.Fatal(err)
	}
	if got.Type != "round_start" || got.Tick != 7 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestFrameRoundTripCompressed(t *testing.T) {
	ev := testEvent{Type: "snapshot", Tick: 42, Data: bytes.Repeat([]byte("entity"), 1024)}
	frame, err := encodeFrame(ev)
	if err != nil {
		t.Fatal(err)
	}
	if frame[0] != frameZstd {
		t.Errorf("large frame prefix = %#x, want zstd", frame[0])
	}
	raw, _ := msgpack.Marshal(ev)
	if len(frame) >= len(raw) {
		t.Errorf("compression did not shrink the frame: %d >= %d", len(frame), len(raw))
	}

	payload, err := decodeFrame(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(payload, raw) {
		t.Error("decompressed payload differs from the original encoding")
	}
	var got testEvent
	if err := msgpack.Unmarshal(payload, &got); err != nil {
		t.Fatal(err)
	}
	if got.Tick != 42 || !bytes.Equal(got.Data, ev.Data) {
		t.Error("round trip lost data")
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	if _, err := decodeFrame(nil); err == nil {
		t.Error("empty frame accepted")
	}
	if _, err := decodeFrame([]byte{0x7f, 1, 2}); err == nil {
		t.Error("unknown prefix accepted")
	}
	if _, err := decodeFrame([]byte{frameZstd, 0xde, 0xad}); err == nil {
		t.Error("corrupt zstd payload accepted")
	}
}
