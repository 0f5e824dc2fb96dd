package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/service"
)

func TestEstimateCueDuration(t *testing.T) {
	short := service.EstimateCueDuration("あ")
	if short < 600*time.Millisecond {
		t.Fatalf("expected at least the base duration, got %v", short)
	}

	long := service.EstimateCueDuration("これはとてもとてもとてもとてもながいよみあげラベルです")
	if long != 3*time.Second {
		t.Fatalf("expected the cap, got %v", long)
	}

	if service.EstimateCueDuration("ねこ") <= short {
		t.Fatal("expected longer labels to estimate longer")
	}
}

func TestClipCue_ResolvesAfterDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cue := service.NewClipCue(clock)

	handle := cue.Speak(context.Background(), "ねこ")
	select {
	case <-handle.Done():
		t.Fatal("cue finished before its clip duration")
	case <-time.After(50 * time.Millisecond):
	}

	clock.BlockUntil(1)
	clock.Advance(service.EstimateCueDuration("ねこ"))

	select {
	case <-handle.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("cue never finished")
	}
}

func TestClipCue_StopReleasesEarly(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cue := service.NewClipCue(clock)

	handle := cue.Speak(context.Background(), "これは 42 です")
	handle.Stop()

	select {
	case <-handle.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("stopped cue never resolved")
	}
}
