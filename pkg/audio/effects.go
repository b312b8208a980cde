// pkg/audio/effects.go
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SoundType identifies one of the game's sound effects.
type SoundType int

const (
	SoundNone SoundType = iota
	SoundDefenderFire
	SoundInvaderFire
	SoundInvaderKill
	SoundDefenderHit
	SoundShieldErode
	SoundRoundWon
	SoundGameLost
)

// String returns the sound name.
func (s SoundType) String() string {
	switch s {
	case SoundDefenderFire:
		return "defender_fire"
	case SoundInvaderFire:
		return "invader_fire"
	case SoundInvaderKill:
		return "invader_kill"
	case SoundDefenderHit:
		return "defender_hit"
	case SoundShieldErode:
		return "shield_erode"
	case SoundRoundWon:
		return "round_won"
	case SoundGameLost:
		return "game_lost"
	default:
		return "none"
	}
}

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// Note is one tone of a sound effect.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     WaveType
}

// soundNotes plays each effect's notes in sequence.
var soundNotes = map[SoundType][]Note{
	SoundDefenderFire: {{Freq: 880, Duration: 50 * time.Millisecond, Wave: WaveSine}},
	SoundInvaderFire:  {{Freq: 220, Duration: 40 * time.Millisecond, Wave: WaveSquare}},
	SoundInvaderKill:  {{Duration: 120 * time.Millisecond, Wave: WaveNoise}},
	SoundDefenderHit: {
		{Freq: 160, Duration: 150 * time.Millisecond, Wave: WaveSquare},
		{Duration: 200 * time.Millisecond, Wave: WaveNoise},
	},
	SoundShieldErode: {{Duration: 30 * time.Millisecond, Wave: WaveNoise}},
	SoundRoundWon: {
		{Freq: 659.25, Duration: 100 * time.Millisecond, Wave: WaveSine},
		{Freq: 783.99, Duration: 100 * time.Millisecond, Wave: WaveSine},
		{Freq: 1046.5, Duration: 200 * time.Millisecond, Wave: WaveSine},
	},
	SoundGameLost: {
		{Freq: 392, Duration: 200 * time.Millisecond, Wave: WaveSquare},
		{Freq: 311.13, Duration: 200 * time.Millisecond, Wave: WaveSquare},
		{Freq: 196, Duration: 500 * time.Millisecond, Wave: WaveSquare},
	},
}

// Notes returns the notes of a sound effect, nil for SoundNone.
func Notes(s SoundType) []Note {
	return soundNotes[s]
}

// Duration returns the total length of a sound effect.
func Duration(s SoundType) time.Duration {
	var d time.Duration
	for _, n := range soundNotes[s] {
		d += n.Duration
	}
	return d
}

// oscillator generates square and noise waves for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// noteStreamer renders one note at the given rate.
func noteStreamer(n Note, rate beep.SampleRate) (beep.Streamer, error) {
	samples := rate.N(n.Duration)
	if n.Wave == WaveSine {
		sine, err := generators.SineTone(rate, n.Freq)
		if err != nil {
			return nil, err
		}
		return beep.Take(samples, sine), nil
	}
	return &oscillator{freq: n.Freq, duration: samples, wave: n.Wave, rate: rate}, nil
}

// newVolume scales a stream by a linear volume; zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateSound builds the streamer for a sound effect at the given linear
// volume. It returns nil for SoundNone.
func CreateSound(s SoundType, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes := soundNotes[s]
	if len(notes) == 0 {
		return nil, nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamer, err := noteStreamer(n, rate)
		if err != nil {
			return nil, err
		}
		parts = append(parts, streamer)
	}
	return newVolume(beep.Seq(parts...), volume), nil
}
