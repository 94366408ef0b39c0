package server

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Frames larger than this are zstd-compressed before broadcast. Snapshot
// frames dominate bandwidth; lifecycle events usually stay under it.
const compressThreshold = 512

// Frame prefix bytes.
const (
	frameRaw  byte = 0x00
	frameZstd byte = 0x01
)

var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// encodeFrame marshals an event with msgpack and compresses large payloads.
// The first byte of the frame tells the receiver which path to take.
func encodeFrame(event any) ([]byte, error) {
	data, err := msgpack.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	if len(data) < compressThreshold {
		return append([]byte{frameRaw}, data...), nil
	}
	return zstdEncoder.EncodeAll(data, []byte{frameZstd}), nil
}

// decodeFrame reverses encodeFrame into the raw msgpack payload.
func decodeFrame(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("decode frame: empty")
	}
	switch frame[0] {
	case frameRaw:
		return frame[1:], nil
	case frameZstd:
		data, err := zstdDecoder.DecodeAll(frame[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("decode frame: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("decode frame: unknown prefix 0x%02x", frame[0])
	}
}
