package postgres

import (
	"testing"
	"time"
)

func TestULIDGeneratorMonotonicWithinMillisecond(t *testing.T) {
	fixed := time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)
	gen := newULIDGenerator(func() time.Time { return fixed })

	prev := gen.Generate()
	for i := 0; i < 1000; i++ {
		next := gen.Generate()
		if len(next) != 26 {
			t.Fatalf("expected 26 character id, got %q", next)
		}
		if next <= prev {
			t.Fatalf("expected %s to sort after %s", next, prev)
		}
		prev = next
	}
}

func TestULIDGeneratorConcurrentUnique(t *testing.T) {
	gen := NewULIDGenerator()

	const workers, perWorker = 8, 200
	ids := make(chan string, workers*perWorker)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < perWorker; i++ {
				ids <- gen.Generate()
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(ids)

	seen := make(map[string]bool, workers*perWorker)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
