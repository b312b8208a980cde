package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-invaders/pkg/engine"
)

// FrameWriter appends msgpack-encoded game states to a stream, one value per
// frame, for replay tools and offline analysis.
type FrameWriter struct {
	enc    *msgpack.Encoder
	frames int
}

// NewFrameWriter creates a FrameWriter on w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return &FrameWriter{enc: enc}
}

// WriteFrame encodes one state.
func (f *FrameWriter) WriteFrame(state *engine.GameState) error {
	if state == nil {
		return errors.New("nil game state")
	}
	if err := f.enc.Encode(state); err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", f.frames, err)
	}
	f.frames++
	return nil
}

// Frames returns how many frames have been written.
func (f *FrameWriter) Frames() int {
	return f.frames
}

// FrameReader decodes a stream written by FrameWriter.
type FrameReader struct {
	dec *msgpack.Decoder
}

// NewFrameReader creates a FrameReader on r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{dec: msgpack.NewDecoder(r)}
}

// Next decodes the next frame. It returns io.EOF after the last one.
func (f *FrameReader) Next() (*engine.GameState, error) {
	var state engine.GameState
	if err := f.dec.Decode(&state); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	return &state, nil
}
