package handler_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// advanceClock keeps firing the fake clock so a streamed run can pace
// itself through its timers. It stops when ctx is cancelled.
func advanceClock(ctx context.Context, env *testEnv) {
	go func() {
		for ctx.Err() == nil {
			env.clock.BlockUntil(1)
			env.clock.Advance(4 * time.Second)
		}
	}()
}

func TestPlayStream_RunsToCompletionAndBooksSession(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "player@example.com")
	childID := env.createChild(t, "あおい")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	advanceClock(ctx, env)

	resp, err := env.client.Get(env.srv.URL + fmt.Sprintf("/api/children/%d/play/english-flash/stream", childID))
	if err != nil {
		t.Fatalf("GET stream: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Fatalf("expected SSE content type, got %s", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	stream := string(body)

	if !strings.Contains(stream, "flash-card") {
		t.Fatal("expected card patches in the stream")
	}
	if !strings.Contains(stream, "flash-done") {
		t.Fatal("expected the completion screen at the end of the stream")
	}
	// The very first run earns the first-session badge.
	if !strings.Contains(stream, "はじめのいっぽ") {
		t.Fatal("expected the first-session badge on the completion screen")
	}

	// The completed run is booked.
	var activity struct {
		Activity []struct {
			AppID string `json:"appId"`
		} `json:"activity"`
	}
	actResp := env.getJSON(t, fmt.Sprintf("/api/children/%d/activity", childID), &activity)
	if actResp.StatusCode != http.StatusOK {
		t.Fatalf("activity: expected 200, got %d", actResp.StatusCode)
	}
	if len(activity.Activity) != 1 || activity.Activity[0].AppID != "english-flash" {
		t.Fatalf("expected one booked english-flash session, got %+v", activity.Activity)
	}

	var progress struct {
		Progress struct {
			TotalSessions int `json:"totalSessions"`
			LearnedWords  []string
		} `json:"progress"`
	}
	progResp := env.getJSON(t, fmt.Sprintf("/api/children/%d/progress/english-flash", childID), &progress)
	if progResp.StatusCode != http.StatusOK {
		t.Fatalf("progress: expected 200, got %d", progResp.StatusCode)
	}
	if progress.Progress.TotalSessions != 1 {
		t.Fatalf("expected one total session, got %d", progress.Progress.TotalSessions)
	}
}

func TestPlayStream_UnknownApp(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "unknown-app@example.com")
	childID := env.createChild(t, "そら")

	resp, err := env.client.Get(env.srv.URL + fmt.Sprintf("/api/children/%d/play/tetris/stream", childID))
	if err != nil {
		t.Fatalf("GET stream: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPlayStream_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.srv.URL + "/api/children/1/play/dots-card/stream")
	if err != nil {
		t.Fatalf("GET stream: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
