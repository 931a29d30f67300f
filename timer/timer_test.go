package timer

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		if _, err := New(d, func(uint64) {}); !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("New(%s) error = %v, want ErrInvalidInterval", d, err)
		}
	}
	if _, err := New(time.Second, nil); err == nil {
		t.Fatal("New with nil func should fail")
	}
}

func TestTicksAreNumberedFromOne(t *testing.T) {
	var mu sync.Mutex
	var seqs []uint64
	got := make(chan struct{})

	tm, err := New(10*time.Millisecond, func(seq uint64) {
		mu.Lock()
		defer mu.Unlock()
		seqs = append(seqs, seq)
		if len(seqs) == 3 {
			close(got)
		}
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := tm.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := tm.Start(); err == nil {
		t.Fatal("second Start() should fail")
	}

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not tick three times")
	}
	tm.Stop()
	tm.Stop()

	mu.Lock()
	defer mu.Unlock()
	for i := 0; i < 3; i++ {
		if seqs[i] != uint64(i+1) {
			t.Fatalf("seqs = %v, want 1,2,3...", seqs)
		}
	}
}
