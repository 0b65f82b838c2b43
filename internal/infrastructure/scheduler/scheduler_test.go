package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestTickerRunsUntilCancelled(t *testing.T) {
	var runs atomic.Int32
	job := func(context.Context) error {
		runs.Add(1)
		return nil
	}
	ticker := NewTicker("bod", 5*time.Millisecond, job, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ticker.Start(ctx) }()

	time.Sleep(40 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop after cancel")
	}

	if runs.Load() == 0 {
		t.Fatalf("expected the job to run at least once")
	}
}

func TestTickerDisabled(t *testing.T) {
	ticker := NewTicker("bod", 0, func(context.Context) error {
		t.Fatal("disabled ticker must not run")
		return nil
	}, zerolog.Nop())

	if ticker.Enabled() {
		t.Fatalf("expected zero interval to disable the ticker")
	}
	if err := ticker.Start(context.Background()); err != nil {
		t.Fatalf("expected nil from disabled ticker, got %v", err)
	}
}

func TestTickerErrorLogging(t *testing.T) {
	busy := errors.New("busy")

	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"quiet error", busy, `"level":"debug"`},
		{"wrapped quiet error", errors.Join(errors.New("run"), busy), `"level":"debug"`},
		{"other error", errors.New("boom"), `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ticker := NewTicker("bod", time.Minute, func(context.Context) error { return tt.err },
				zerolog.New(&buf).Level(zerolog.DebugLevel), WithQuietErrors(busy))

			ticker.runOnce(context.Background())

			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Fatalf("expected %s in %s", tt.wantLevel, buf.String())
			}
		})
	}
}
