package service_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

// stubCuePlayer hands out cues that finish only when the test says so.
type stubCuePlayer struct {
	mu      sync.Mutex
	handles []*stubCueHandle
}

type stubCueHandle struct {
	done chan struct{}
	once sync.Once
}

func (h *stubCueHandle) Done() <-chan struct{} { return h.done }
func (h *stubCueHandle) Stop()                 { h.finish() }
func (h *stubCueHandle) finish()               { h.once.Do(func() { close(h.done) }) }

func (p *stubCuePlayer) Speak(ctx context.Context, label string) service.CueHandle {
	h := &stubCueHandle{done: make(chan struct{})}
	p.mu.Lock()
	p.handles = append(p.handles, h)
	p.mu.Unlock()
	return h
}

// handle waits for the i-th cue to start; the runner speaks each cue
// shortly after emitting the step event.
func (p *stubCuePlayer) handle(i int) *stubCueHandle {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		if len(p.handles) > i {
			h := p.handles[i]
			p.mu.Unlock()
			return h
		}
		p.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	panic("cue was never started")
}

func wordSteps(n int) []service.Step {
	steps := make([]service.Step, n)
	for i := range steps {
		steps[i] = service.Step{Index: i, Total: n, Kind: domain.StimulusWord, Word: "dog", CueLabel: "dog"}
	}
	return steps
}

func recvEvent(t *testing.T, events <-chan service.RunEvent) service.RunEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("events channel closed unexpectedly")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return service.RunEvent{}
}

func assertNoEvent(t *testing.T, events <-chan service.RunEvent) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunner_AdvancesOnlyWhenTimerAndCueDone(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cues := &stubCuePlayer{}
	runner := service.NewRunner(clock, cues)

	finalized := false
	run := runner.Start(context.Background(), wordSteps(2), 2*time.Second, func(time.Duration) { finalized = true })

	ev := recvEvent(t, run.Events())
	if ev.Step == nil || ev.Step.Index != 0 {
		t.Fatalf("expected step 0, got %+v", ev)
	}

	// Timer elapses but the cue is still playing: no advance.
	clock.BlockUntil(1)
	clock.Advance(2 * time.Second)
	assertNoEvent(t, run.Events())

	// Cue finishes: now the next step comes through.
	cues.handle(0).finish()
	ev = recvEvent(t, run.Events())
	if ev.Step == nil || ev.Step.Index != 1 {
		t.Fatalf("expected step 1, got %+v", ev)
	}

	// Cue done but timer still running: no advance either.
	cues.handle(1).finish()
	assertNoEvent(t, run.Events())

	clock.BlockUntil(1)
	clock.Advance(2 * time.Second)
	ev = recvEvent(t, run.Events())
	if !ev.Finished {
		t.Fatalf("expected finished event, got %+v", ev)
	}
	if !finalized {
		t.Fatal("expected finalize to run")
	}

	if _, ok := <-run.Events(); ok {
		t.Fatal("expected events channel to close after finish")
	}
}

func TestRunner_CancelStopsRunWithoutFinalize(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cues := &stubCuePlayer{}
	runner := service.NewRunner(clock, cues)

	ctx, cancel := context.WithCancel(context.Background())
	finalized := false
	run := runner.Start(ctx, wordSteps(3), time.Second, func(time.Duration) { finalized = true })

	recvEvent(t, run.Events())
	cancel()

	// The channel closes without further step or finished events.
	for ev := range run.Events() {
		t.Fatalf("unexpected event after cancel: %+v", ev)
	}
	if finalized {
		t.Fatal("finalize must not run for a cancelled sequence")
	}
}

func TestRunner_CueFailureDoesNotStall(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cues := &stubCuePlayer{}
	runner := service.NewRunner(clock, cues)

	run := runner.Start(context.Background(), wordSteps(1), time.Second, func(time.Duration) {})

	recvEvent(t, run.Events())

	// A failed cue resolves immediately, exactly like a finished one.
	cues.handle(0).finish()
	clock.BlockUntil(1)
	clock.Advance(time.Second)

	ev := recvEvent(t, run.Events())
	if !ev.Finished {
		t.Fatalf("expected finished, got %+v", ev)
	}
}

func TestRunner_SetSpeedAppliesToLaterSteps(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cues := &stubCuePlayer{}
	runner := service.NewRunner(clock, cues)

	run := runner.Start(context.Background(), wordSteps(2), 10*time.Second, func(time.Duration) {})

	recvEvent(t, run.Events())
	run.SetSpeed(time.Second)

	// Step 0 keeps its original 10s timer.
	cues.handle(0).finish()
	clock.BlockUntil(1)
	clock.Advance(time.Second)
	assertNoEvent(t, run.Events())
	clock.Advance(9 * time.Second)

	recvEvent(t, run.Events())

	// Step 1 runs at the new speed.
	cues.handle(1).finish()
	clock.BlockUntil(1)
	clock.Advance(time.Second)
	ev := recvEvent(t, run.Events())
	if !ev.Finished {
		t.Fatalf("expected finished, got %+v", ev)
	}
}

func TestExpandStimuli_EquationFiveSteps(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	eq := &domain.Equation{A: 2, B: 3, Op: domain.OpAdd, Answer: 5}
	steps := service.ExpandStimuli(rng, []domain.Stimulus{{Kind: domain.StimulusEquation, Equation: eq}})

	if len(steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(steps))
	}

	wantCues := []string{"2", "たす", "3", "は", "5"}
	wantDots := []int{2, 0, 3, 0, 5}
	for i, step := range steps {
		if step.SubStep != i {
			t.Errorf("step %d: expected substep %d, got %d", i, i, step.SubStep)
		}
		if step.CueLabel != wantCues[i] {
			t.Errorf("step %d: expected cue %q, got %q", i, wantCues[i], step.CueLabel)
		}
		if len(step.Dots) != wantDots[i] {
			t.Errorf("step %d: expected %d dots, got %d", i, wantDots[i], len(step.Dots))
		}
	}
	if steps[1].Symbol != "+" {
		t.Errorf("expected operator symbol +, got %q", steps[1].Symbol)
	}
	if steps[3].Symbol != "=" {
		t.Errorf("expected equals symbol, got %q", steps[3].Symbol)
	}
}

func TestExpandStimuli_DotsCard(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	steps := service.ExpandStimuli(rng, []domain.Stimulus{{Kind: domain.StimulusDots, Number: 7}})

	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if len(steps[0].Dots) != 7 {
		t.Fatalf("expected 7 dots, got %d", len(steps[0].Dots))
	}
	if steps[0].CueLabel != "これは 7 です" {
		t.Fatalf("unexpected cue label %q", steps[0].CueLabel)
	}
}

func TestRunner_EmptySequenceClosesWithoutFinalize(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cues := &stubCuePlayer{}
	runner := service.NewRunner(clock, cues)

	finalized := false
	run := runner.Start(context.Background(), nil, 2*time.Second, func(time.Duration) { finalized = true })

	select {
	case ev, ok := <-run.Events():
		if ok {
			t.Fatalf("unexpected event from empty run: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the empty run to close")
	}
	if finalized {
		t.Fatal("an empty run must not finalize")
	}
}
