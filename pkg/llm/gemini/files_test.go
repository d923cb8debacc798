package gemini

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"google.golang.org/genai"

	"reelatlas/pkg/llm"
)

func TestAwaitActive_BecomesActive(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls int32

	done := make(chan error, 1)
	go func() {
		done <- awaitActive(context.Background(), clock, 2*time.Second, 120*time.Second, func(context.Context) (genai.FileState, error) {
			if atomic.AddInt32(&calls, 1) < 3 {
				return genai.FileStateProcessing, nil
			}
			return genai.FileStateActive, nil
		})
	}()

	for i := 0; i < 2; i++ {
		clock.BlockUntil(1)
		clock.Advance(2 * time.Second)
	}

	if err := <-done; err != nil {
		t.Fatalf("expected asset to become active, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("state checked %d times, want 3", got)
	}
}

func TestAwaitActive_Timeout(t *testing.T) {
	clock := clockwork.NewFakeClock()

	done := make(chan error, 1)
	go func() {
		done <- awaitActive(context.Background(), clock, 2*time.Second, 10*time.Second, func(context.Context) (genai.FileState, error) {
			return genai.FileStateProcessing, nil
		})
	}()

	for i := 0; i < 5; i++ {
		clock.BlockUntil(1)
		clock.Advance(2 * time.Second)
	}

	err := <-done
	if !errors.Is(err, llm.ErrAssetTimeout) {
		t.Fatalf("expected ErrAssetTimeout, got %v", err)
	}
}

func TestAwaitActive_FailedState(t *testing.T) {
	clock := clockwork.NewFakeClock()

	err := awaitActive(context.Background(), clock, 2*time.Second, 10*time.Second, func(context.Context) (genai.FileState, error) {
		return genai.FileStateFailed, nil
	})
	if !errors.Is(err, llm.ErrAssetFailed) {
		t.Fatalf("expected ErrAssetFailed, got %v", err)
	}
}

func TestAwaitActive_GetError(t *testing.T) {
	clock := clockwork.NewFakeClock()
	boom := errors.New("boom")

	err := awaitActive(context.Background(), clock, 2*time.Second, 10*time.Second, func(context.Context) (genai.FileState, error) {
		return genai.FileStateUnspecified, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped get error, got %v", err)
	}
}
