package service

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
)

// CueHandle tracks one playing audio cue. Done is closed when the cue
// has finished (or failed; failures resolve, they never hang). Stop
// releases the cue early.
type CueHandle interface {
	Done() <-chan struct{}
	Stop()
}

// CuePlayer starts the narration cue for a card and reports its
// completion. The server does not emit audio itself; it paces the
// sequence by the cue's duration while the client plays the clip.
type CuePlayer interface {
	Speak(ctx context.Context, label string) CueHandle
}

const (
	cueBase    = 600 * time.Millisecond
	cuePerRune = 90 * time.Millisecond
	cueMax     = 3 * time.Second
)

// EstimateCueDuration approximates how long the narration clip for a
// label runs. Clips are short kana phrases, so a per-rune rate with a
// floor and a cap tracks them closely enough for pacing.
func EstimateCueDuration(label string) time.Duration {
	d := cueBase + time.Duration(utf8.RuneCountInString(label))*cuePerRune
	if d > cueMax {
		d = cueMax
	}
	return d
}

// ClipCue is the production CuePlayer. It resolves each cue after the
// estimated clip duration using the injected clock.
type ClipCue struct {
	clock clockwork.Clock
}

// NewClipCue creates a ClipCue on the given clock.
func NewClipCue(clock clockwork.Clock) *ClipCue {
	return &ClipCue{clock: clock}
}

func (c *ClipCue) Speak(ctx context.Context, label string) CueHandle {
	h := &clipHandle{done: make(chan struct{}), stop: make(chan struct{})}
	timer := c.clock.NewTimer(EstimateCueDuration(label))
	go func() {
		defer close(h.done)
		select {
		case <-timer.Chan():
		case <-ctx.Done():
			stopAndDrainTimer(timer)
		case <-h.stopped():
			stopAndDrainTimer(timer)
		}
	}()
	return h
}

type clipHandle struct {
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func (h *clipHandle) Done() <-chan struct{} { return h.done }

func (h *clipHandle) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *clipHandle) stopped() <-chan struct{} { return h.stop }

// stopAndDrainTimer stops a timer and drains its channel so a late fire
// cannot leak into a later select.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
