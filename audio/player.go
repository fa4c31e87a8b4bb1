package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/evomaze/pathfind"
)

// SampleRate used for all cues
const SampleRate = beep.SampleRate(44100)

// Player owns the speaker; a nil or disabled player is silent
type Player struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
}

// NewPlayer initializes the speaker; the error is non-fatal for callers,
// who may keep the returned silent player
func NewPlayer(volume float64) (*Player, error) {
	p := &Player{volume: min(max(volume, 0), 1)}

	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return p, err
	}
	p.initialized = true
	return p, nil
}

// Cue selects the streamer matching a run outcome
func Cue(res pathfind.Result, volume float64) beep.Streamer {
	if res.Found {
		return SuccessCue(SampleRate, volume)
	}
	return FailureCue(SampleRate, volume)
}

// PlayResult plays the outcome cue and blocks until it has finished
func (p *Player) PlayResult(res pathfind.Result) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(Cue(res, p.volume), beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// Close releases the audio device
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
}
