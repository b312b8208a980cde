// pkg/audio/sound_manager.go
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/event"
	"github.com/opd-ai/go-invaders/pkg/logging"
)

const sampleRate = beep.SampleRate(44100)

// DefaultVolume is the linear volume of every effect.
const DefaultVolume = 0.5

// SoundForEvent picks the sound effect for a game event.
func SoundForEvent(e event.Event) SoundType {
	switch e.GetType() {
	case event.BulletFired:
		if se, ok := e.(*event.ShipEvent); ok && se.Side == entity.SideDefender.String() {
			return SoundDefenderFire
		}
		return SoundInvaderFire
	case event.InvaderDestroyed:
		return SoundInvaderKill
	case event.DefenderHit:
		return SoundDefenderHit
	case event.ShieldEroded:
		return SoundShieldErode
	case event.RoundWon:
		return SoundRoundWon
	case event.GameLost:
		return SoundGameLost
	default:
		return SoundNone
	}
}

// subscribedEvents are the bus events with a sound.
var subscribedEvents = []event.Type{
	event.BulletFired,
	event.InvaderDestroyed,
	event.DefenderHit,
	event.ShieldEroded,
	event.RoundWon,
	event.GameLost,
}

// SoundManager plays the game's sound effects in response to bus events.
// Until Initialize succeeds every sound is silently dropped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
	play        func(beep.Streamer)

	bus  *event.Bus
	subs map[event.Type]event.SubscriptionID

	logger *logging.Logger
	ctx    context.Context
}

// NewSoundManager creates a new sound manager
func NewSoundManager(ctx context.Context, logger *logging.Logger) *SoundManager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: DefaultVolume,
		subs:   make(map[event.Type]event.SubscriptionID),
		logger: logger.WithComponent("audio"),
		ctx:    ctx,
	}
	sm.play = sm.mix
	return sm
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return logging.WrapError(err, "failed to open speaker")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info(sm.ctx, "audio initialized", "sample_rate", int(sampleRate))
	return nil
}

// SetVolume sets the linear volume of subsequent effects.
func (sm *SoundManager) SetVolume(volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = max(0, volume)
}

// Attach subscribes the manager to bus. A second Attach moves it to the
// new bus.
func (sm *SoundManager) Attach(bus *event.Bus) {
	sm.Detach()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.bus = bus
	for _, t := range subscribedEvents {
		sm.subs[t] = bus.Subscribe(t, sm.handle)
	}
}

// Detach removes every subscription made by Attach.
func (sm *SoundManager) Detach() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.bus == nil {
		return
	}
	for t, id := range sm.subs {
		sm.bus.Unsubscribe(t, id)
		delete(sm.subs, t)
	}
	sm.bus = nil
}

func (sm *SoundManager) handle(e event.Event) {
	sm.PlaySound(SoundForEvent(e))
}

// PlaySound queues a sound effect on the mixer.
func (sm *SoundManager) PlaySound(s SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == SoundNone {
		return
	}

	streamer, err := CreateSound(s, sampleRate, sm.volume)
	if err != nil {
		sm.logger.Warn(sm.ctx, "failed to build sound", "sound", s.String(), "error", err.Error())
		return
	}
	sm.play(streamer)
	sm.logger.Debug(sm.ctx, "sound played", "sound", s.String())
}

// mix adds a streamer to the mixer while the speaker is paused.
func (sm *SoundManager) mix(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup detaches from the bus and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.Detach()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
