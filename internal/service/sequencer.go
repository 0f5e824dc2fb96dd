package service

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/domain"
)

// Step is one displayed unit in a flash run. Simple stimuli expand to a
// single step; an equation expands to five (a, operator, b, equals,
// answer), each paced like a top-level card.
type Step struct {
	Index    int
	SubStep  int
	Total    int
	Kind     domain.StimulusKind
	CueLabel string

	// Dots display.
	Number int
	Dots   []domain.Point

	// Symbol display for operator and equals sub-steps.
	Symbol string

	// Word and kana display. Display is the kana card layout: "full",
	// "hiragana", or "kanji".
	Word    string
	Kana    string
	Kanji   string
	Emoji   string
	Display string
}

// ExpandStimuli flattens a stimulus sequence into paced steps, placing
// dots for every dot-bearing step up front so a run's visuals are fixed
// before it starts.
func ExpandStimuli(rng *rand.Rand, stimuli []domain.Stimulus) []Step {
	var steps []Step
	for i, st := range stimuli {
		switch st.Kind {
		case domain.StimulusDots:
			steps = append(steps, Step{
				Index:    i,
				Total:    len(stimuli),
				Kind:     st.Kind,
				CueLabel: "これは " + strconv.Itoa(st.Number) + " です",
				Number:   st.Number,
				Dots:     GenerateDotPositions(rng, st.Number, DotSpacingCard),
			})
		case domain.StimulusWord:
			steps = append(steps, Step{
				Index:    i,
				Total:    len(stimuli),
				Kind:     st.Kind,
				CueLabel: st.Word,
				Word:     st.Word,
				Kana:     st.Kana,
				Emoji:    st.Emoji,
			})
		case domain.StimulusKana:
			steps = append(steps, Step{
				Index:    i,
				Total:    len(stimuli),
				Kind:     st.Kind,
				CueLabel: st.Word,
				Word:     st.Word,
				Kana:     st.Kana,
				Kanji:    st.Kanji,
				Emoji:    st.Emoji,
				Display:  st.Display,
			})
		case domain.StimulusEquation:
			steps = append(steps, expandEquation(rng, i, len(stimuli), st.Equation)...)
		}
	}
	return steps
}

func expandEquation(rng *rand.Rand, index, total int, eq *domain.Equation) []Step {
	opLabel := "たす"
	if eq.Op == domain.OpSub {
		opLabel = "ひく"
	}
	dots := func(n int) []domain.Point {
		return GenerateDotPositions(rng, n, DotSpacingMath)
	}
	base := Step{Index: index, Total: total, Kind: domain.StimulusEquation}

	a := base
	a.SubStep = 0
	a.CueLabel = strconv.Itoa(eq.A)
	a.Number = eq.A
	a.Dots = dots(eq.A)

	op := base
	op.SubStep = 1
	op.CueLabel = opLabel
	op.Symbol = string(eq.Op)

	b := base
	b.SubStep = 2
	b.CueLabel = strconv.Itoa(eq.B)
	b.Number = eq.B
	b.Dots = dots(eq.B)

	eqls := base
	eqls.SubStep = 3
	eqls.CueLabel = "は"
	eqls.Symbol = "="

	ans := base
	ans.SubStep = 4
	ans.CueLabel = strconv.Itoa(eq.Answer)
	ans.Number = eq.Answer
	ans.Dots = dots(eq.Answer)

	return []Step{a, op, b, eqls, ans}
}

// RunEvent is one message from a running sequence. Step is set for a
// card advance, Finished for the terminal event after the last card.
type RunEvent struct {
	Step     *Step
	Finished bool
}

// Runner drives flash sequences against an injected clock and cue
// player, so tests advance time instead of sleeping.
type Runner struct {
	clock clockwork.Clock
	cues  CuePlayer
}

// NewRunner creates a Runner.
func NewRunner(clock clockwork.Clock, cues CuePlayer) *Runner {
	return &Runner{clock: clock, cues: cues}
}

// Run is one in-flight flash sequence.
type Run struct {
	events     chan RunEvent
	speedNanos atomic.Int64
	finishOnce sync.Once
}

// Events yields the run's step and completion events. The channel
// closes when the run completes or its context is cancelled.
func (r *Run) Events() <-chan RunEvent { return r.events }

// SetSpeed changes the per-card display duration for steps that have
// not been shown yet. The step currently on screen keeps its timer.
func (r *Run) SetSpeed(d time.Duration) { r.speedNanos.Store(int64(d)) }

func (r *Run) speed() time.Duration { return time.Duration(r.speedNanos.Load()) }

// Start launches a sequence. Every step advances only after both its
// display timer and its audio cue have completed. Cancelling ctx stops
// the run immediately: no later events, and finalize never fires. A run
// that shows its last card calls finalize exactly once with the elapsed
// wall time, then emits the Finished event. A run needs at least one
// step: an empty sequence closes the channel immediately, with no
// events and no finalize.
func (r *Runner) Start(ctx context.Context, steps []Step, perStep time.Duration, finalize func(elapsed time.Duration)) *Run {
	run := &Run{events: make(chan RunEvent)}
	run.SetSpeed(perStep)

	go func() {
		defer close(run.events)
		if len(steps) == 0 {
			return
		}
		start := r.clock.Now()

		for i := range steps {
			step := &steps[i]
			// The duration is fixed once the step goes on screen; a
			// speed change only reaches steps not yet shown.
			d := run.speed()
			select {
			case run.events <- RunEvent{Step: step}:
			case <-ctx.Done():
				return
			}

			cue := r.cues.Speak(ctx, step.CueLabel)
			timer := r.clock.NewTimer(d)
			if !r.awaitStep(ctx, timer, cue) {
				return
			}
		}

		if ctx.Err() != nil {
			return
		}
		elapsed := r.clock.Since(start)
		run.finishOnce.Do(func() { finalize(elapsed) })

		select {
		case run.events <- RunEvent{Finished: true}:
		case <-ctx.Done():
		}
	}()

	return run
}

// awaitStep blocks until both the display timer and the cue are done.
// Returns false on cancellation, after releasing both waits.
func (r *Runner) awaitStep(ctx context.Context, timer clockwork.Timer, cue CueHandle) bool {
	timerC := timer.Chan()
	cueC := cue.Done()
	for timerC != nil || cueC != nil {
		select {
		case <-timerC:
			timerC = nil
		case <-cueC:
			cueC = nil
		case <-ctx.Done():
			stopAndDrainTimer(timer)
			cue.Stop()
			return false
		}
	}
	return true
}
